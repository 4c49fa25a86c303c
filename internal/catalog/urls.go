package catalog

import (
	"fmt"
	"net/url"

	"audimatch/internal/constants"
	"audimatch/internal/domain"
)

func (c *Client) audibleSearchURL(region, title, author string) string {
	base := c.audibleBase
	if base == "" {
		base = fmt.Sprintf("https://api.audible.%s", domain.RegionTLD(region))
	}
	u := base + "/1.0/catalog/products?" + constants.AudibleSearchParams +
		"&title=" + url.QueryEscape(title)
	if author != "" {
		u += "&author=" + url.QueryEscape(author)
	}
	return u
}

func (c *Client) audnexusHost() string {
	if c.audnexusBase != "" {
		return c.audnexusBase
	}
	return constants.AudnexusBaseURL
}

func (c *Client) audnexusBookURL(id domain.CatalogID) string {
	return fmt.Sprintf("%s/books/%s?region=%s", c.audnexusHost(), url.PathEscape(id.ASIN), id.Region)
}

func (c *Client) audnexusAuthorURL(id domain.CatalogID) string {
	return fmt.Sprintf("%s/authors/%s?region=%s", c.audnexusHost(), url.PathEscape(id.ASIN), id.Region)
}

func (c *Client) audnexusAuthorSearchURL(name, region string) string {
	return fmt.Sprintf("%s/authors?region=%s&name=%s", c.audnexusHost(), region, url.QueryEscape(name))
}
