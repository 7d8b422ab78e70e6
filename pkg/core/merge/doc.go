// Package merge derives the canonical render record from a template and a
// dynamic record.
//
// Values are taken with a fixed precedence: a dynamic value wins over the
// template's custom default, which wins over a hard-coded fallback. The
// merge is pure: it reads no clock and no globals, so identical inputs
// (including the reference date passed with [WithToday]) always produce an
// identical [Record]. Callers capture "today" once at the top of a render.
//
//	rec := merge.Merge(tmpl, dyn,
//	    merge.WithToday(time.Now()),
//	    merge.WithResolver(asset.NewResolver("https://api.example.com")),
//	)
//	fmt.Println(rec.Title, rec.IssueDateFormatted)
package merge
