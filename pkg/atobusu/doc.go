// Package atobusu implements the template rendering and placeholder
// substitution engine used to generate HTML/PHP marketing pages.
//
// Templates mix three kinds of content: ordinary placeholder text,
// literal embedded PHP calls whose syntax must survive rendering, and
// raw Japanese text that needs character-level normalization. The
// engine tokenizes template text into typed regions (literal, embedded
// call, placeholder), resolves each region against an immutable data
// context, and reassembles the output without dropping or reordering a
// single character of input.
//
// Basic usage:
//
//	ctx := atobusu.NewDataContext(map[string]interface{}{
//	    "product_code": "ABC123",
//	    "post_date":    "2025/01/15",
//	})
//
//	out, err := atobusu.RenderTemplate(templateText, ctx, atobusu.FormatMixed)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out.Text)
//
// Every operation is a pure transformation over immutable inputs:
// renders may run fully in parallel with no coordination. The only
// shared state, the pattern and conversion catalogs, is read-only after
// process initialization.
package atobusu
