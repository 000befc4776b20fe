package source

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding/htmlindex"
)

// CharsetUTF8 is reported for input that is already valid UTF-8.
const CharsetUTF8 = "UTF-8"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// chardet names that are not WHATWG labels.
var charsetAliases = map[string]string{
	"gb-18030": "gb18030",
}

// DetectEncoding guesses the character set of data. Valid UTF-8 short-cuts
// detection; anything else goes through chardet.
func DetectEncoding(data []byte) (string, error) {
	if utf8.Valid(data) {
		return CharsetUTF8, nil
	}
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return "", &EncodingDetectionError{Err: err}
	}
	if result == nil || result.Charset == "" {
		return "", &EncodingDetectionError{Err: errors.New("no charset candidate")}
	}
	return result.Charset, nil
}

// ToUTF8 transcodes data from charset into UTF-8, drops a leading byte order
// mark and normalises line endings to "\n".
func ToUTF8(data []byte, charset string) ([]byte, error) {
	out := data
	if !isUTF8(charset) {
		enc, err := htmlindex.Get(normaliseCharset(charset))
		if err != nil {
			return nil, &EncodingDetectionError{Charset: charset, Err: err}
		}
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return nil, &EncodingDetectionError{Charset: charset, Err: err}
		}
		out = decoded
	}
	out = bytes.TrimPrefix(out, utf8BOM)
	out = bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))
	out = bytes.ReplaceAll(out, []byte("\r"), []byte("\n"))
	return out, nil
}

// Decode detects the encoding of data and returns it as UTF-8 text together
// with the detected charset name.
func Decode(data []byte) (string, string, error) {
	charset, err := DetectEncoding(data)
	if err != nil {
		return "", "", err
	}
	out, err := ToUTF8(data, charset)
	if err != nil {
		return "", charset, err
	}
	return string(out), charset, nil
}

func isUTF8(charset string) bool {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "utf-8", "utf8", "ascii", "us-ascii":
		return true
	}
	return false
}

func normaliseCharset(charset string) string {
	key := strings.ToLower(strings.TrimSpace(charset))
	if alias, ok := charsetAliases[key]; ok {
		return alias
	}
	return key
}
