// Package apiglot localizes the pages of a web project through the Apiglot
// translation API.
//
// A page is split into the markup that gets translated and the blocks that
// must survive untouched (style blocks by default). The translated body is
// then written next to the source page, with the excluded blocks appended.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/apiglot/apiglot"
//	    "github.com/apiglot/apiglot/client"
//	    "github.com/apiglot/apiglot/provider"
//	)
//
//	func main() {
//	    c, err := client.New(client.Options{APIKey: os.Getenv("APIGLOT_API_KEY")})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    project, err := c.ProjectInfo(context.Background(), "my-project", "")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    p := provider.NewAPIProvider(c, "my-project")
//
//	    l := apiglot.NewLocalizer(p,
//	        apiglot.WithPacer(apiglot.NewPacer(time.Second)),
//	    )
//
//	    summary, err := l.Run(context.Background(), apiglot.Plan{
//	        PagesDir:      "./src/pages",
//	        Project:       project,
//	        Locales:       []string{"en", "es", "de"},
//	        DefaultLocale: "en",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(summary.Written)
//	}
package apiglot
