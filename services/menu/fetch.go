package menu

import (
	"context"
	"net/url"
	"time"

	"hudsmenu-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseUrl is the dining service's menu page. The page renders one
// day at a time, selected by the dtdate query parameter.
const DefaultBaseUrl = "https://www.foodpro.huds.harvard.edu/foodpro/shtmenu.aspx"

// Fetcher retrieves raw menu markup for a single day.
type Fetcher interface {
	FetchDay(ctx context.Context, date time.Time) (string, error)
}

type HttpFetcher struct {
	client  *resty.Client
	baseUrl string
}

func NewHttpFetcher(baseUrl string) HttpFetcher {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	client := resty.New().SetTimeout(time.Second * 30)
	restyutil.InstrumentClient(client, tracer)
	return HttpFetcher{
		client:  client,
		baseUrl: baseUrl,
	}
}

func (f HttpFetcher) FetchDay(ctx context.Context, date time.Time) (string, error) {
	link, err := url.Parse(f.baseUrl)
	if err != nil {
		return "", errorf(FetchFailed, "bad menu url: %w", err)
	}

	query := url.Values{}
	query.Add("sName", "HARVARD UNIVERSITY DINING SERVICES")
	query.Add("locationNum", "38")
	query.Add("locationName", "Dining Hall")
	query.Add("naFlag", "1")
	query.Add("WeeksMenus", "This Week's Menus")
	query.Add("myaction", "read")
	query.Add("dtdate", date.Format("01/02/2006"))
	link.RawQuery = query.Encode()

	res, err := f.client.R().
		SetContext(ctx).
		Get(link.String())
	if err != nil {
		return "", errorf(FetchFailed, "fetch menu page for %s: %w", isoDate(date), err)
	}
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		return "", errorf(FetchFailed, "fetch menu page for %s: status %d", isoDate(date), res.StatusCode())
	}

	return res.String(), nil
}

var _ Fetcher = HttpFetcher{}
