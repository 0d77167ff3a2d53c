package linkedin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const peopleSearchQueryID = "voyagerSearchDashClusters.b0928897b71bd00a5a7291755dcd64f0"

type textViewModel struct {
	Text string `json:"text"`
}

type entityResult struct {
	EntityURN                string         `json:"entityUrn"`
	Title                    *textViewModel `json:"title"`
	PrimarySubtitle          *textViewModel `json:"primarySubtitle"`
	SecondarySubtitle        *textViewModel `json:"secondarySubtitle"`
	EntityCustomTrackingInfo *struct {
		MemberDistance string `json:"memberDistance"`
	} `json:"entityCustomTrackingInfo"`
}

type searchResponse struct {
	Data struct {
		SearchDashClustersByAll struct {
			Elements []struct {
				Items []struct {
					Item struct {
						EntityResult *entityResult `json:"entityResult"`
					} `json:"item"`
				} `json:"items"`
			} `json:"elements"`
		} `json:"searchDashClustersByAll"`
	} `json:"data"`
}

// SearchPeople runs a single people search page and returns at most
// params.Limit results in LinkedIn's order.
func (c *Client) SearchPeople(ctx context.Context, params SearchParams) ([]Person, error) {
	var parsed searchResponse
	err := c.call(ctx, "search", http.MethodGet, "/graphql?"+peopleSearchQuery(params), nil, http.StatusOK, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&parsed)
	})
	if err != nil {
		return nil, err
	}

	var people []Person
	for _, cluster := range parsed.Data.SearchDashClustersByAll.Elements {
		for _, it := range cluster.Items {
			e := it.Item.EntityResult
			if e == nil {
				continue
			}
			people = append(people, e.person())
			if params.Limit > 0 && len(people) >= params.Limit {
				return people, nil
			}
		}
	}
	return people, nil
}

func (e *entityResult) person() Person {
	p := Person{URNID: profileIDFromEntityURN(e.EntityURN)}
	if e.Title != nil {
		p.Name = e.Title.Text
	}
	if e.PrimarySubtitle != nil {
		p.JobTitle = e.PrimarySubtitle.Text
	}
	if e.SecondarySubtitle != nil {
		p.Location = e.SecondarySubtitle.Text
	}
	if e.EntityCustomTrackingInfo != nil {
		p.Distance = e.EntityCustomTrackingInfo.MemberDistance
	}
	return p
}

// peopleSearchQuery renders the Rest.li variables expression. Parentheses and
// commas are structural, so only the keywords are escaped.
func peopleSearchQuery(params SearchParams) string {
	filters := []string{"(key:resultType,value:List(PEOPLE))"}
	if ids := nonEmptyIDs(params.Regions); len(ids) > 0 {
		filters = append(filters, "(key:geoUrn,value:List("+strings.Join(ids, ",")+"))")
	}
	if ids := nonEmptyIDs(params.Industries); len(ids) > 0 {
		filters = append(filters, "(key:industry,value:List("+strings.Join(ids, ",")+"))")
	}
	if len(params.NetworkDepths) > 0 {
		filters = append(filters, "(key:network,value:List("+strings.Join(params.NetworkDepths, ",")+"))")
	}

	variables := "(start:0,origin:GLOBAL_SEARCH_HEADER,query:(" +
		"keywords:" + escapeKeywords(params.Keywords) +
		",flagshipSearchIntent:SEARCH_SRP" +
		",queryParameters:List(" + strings.Join(filters, ",") + ")" +
		",includeFiltersInResponse:false))"

	return "variables=" + variables + "&queryId=" + peopleSearchQueryID
}

// escapeKeywords query-escapes free text so it cannot break the Rest.li
// structure, with spaces as %20.
func escapeKeywords(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func nonEmptyIDs(values []string) []string {
	var ids []string
	for _, v := range values {
		if id := urnID(v); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
