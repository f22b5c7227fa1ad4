// Package sitemap assembles the XML sitemap from canonical business URLs.
package sitemap

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	"github.com/nowopenyyc/nowopen/internal/pkg/directory"
)

// MaxEntries caps the sitemap to bound response size.
const MaxEntries = 5000

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// Generate builds the sitemap XML for every active listed business plus the
// top-level pages. Entries beyond MaxEntries are dropped, newest first.
func Generate(ctx context.Context, svc *directory.Service, baseURL string) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")

	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []urlEntry{
			{Loc: base + "/", ChangeFreq: "daily"},
			{Loc: base + "/businesses", ChangeFreq: "daily"},
		},
	}

	offset := 0
	for len(set.URLs) < MaxEntries {
		remaining := MaxEntries - len(set.URLs)
		limit := directory.MaxLimit
		if remaining < limit {
			limit = remaining
		}

		res, err := svc.Search(ctx, directory.QueryOptions{
			Limit:     limit,
			Offset:    offset,
			SortBy:    directory.SortByFirstIssued,
			SortOrder: directory.SortDesc,
		})
		if err != nil {
			return nil, err
		}

		for _, b := range res.Items {
			set.URLs = append(set.URLs, urlEntry{
				Loc:        base + "/business/" + b.Slug,
				LastMod:    b.UpdatedAt.Format(time.DateOnly),
				ChangeFreq: "weekly",
			})
		}

		if !res.HasMore {
			break
		}
		offset += len(res.Items)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
