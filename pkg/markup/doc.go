// Package markup turns section-tagged product descriptions into the <ECI>
// markup dialect consumed by the storefront template.
//
// A raw description is a flat string of tagged sections:
//
//	{product_name}acme super-duper widget{description}A widget for everything.
//
// ParseSections splits the text into an ordered SectionMap, the Formatter
// filters every section (title-casing product_name, passing the rest through)
// and concatenates the results after the opening <ECI> tag:
//
//	out, err := markup.Format("{product_name}acme blaster{description}a great blaster")
//	// out == "<ECI>acme Blastera great blaster"
//
// Format hints ({features#list}) are parsed but only influence rendering when
// a HintRenderer is configured through WithHintRenderer. The renderer then
// receives every section except product_name, with an empty hint for
// sections that carry none.
package markup
