package loader

import (
	"context"
	"fmt"

	apperrors "github.com/palemoky/pokemon-data-api/internal/errors"
	"github.com/palemoky/pokemon-data-api/internal/record"
)

// maxIndexPages guards against a paginated index that links back to itself.
const maxIndexPages = 100

// ResourcePointer is one item of a paginated index.
type ResourcePointer struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type indexPage struct {
	Count   int               `json:"count"`
	Next    *string           `json:"next"`
	Results []ResourcePointer `json:"results"`
}

// FetchPokedexIndex collects the pokedex pointers from every page of the index.
func (c *Client) FetchPokedexIndex(ctx context.Context) ([]ResourcePointer, error) {
	var pointers []ResourcePointer

	next := c.cfg.PokedexURL
	for page := 0; next != ""; page++ {
		if page >= maxIndexPages {
			return nil, &apperrors.FetchError{URL: next, Err: fmt.Errorf("more than %d index pages", maxIndexPages)}
		}
		if page > 0 {
			if err := c.Wait(ctx); err != nil {
				return nil, &apperrors.FetchError{URL: next, Err: err}
			}
		}

		var p indexPage
		if err := c.GetJSON(ctx, next, &p); err != nil {
			return nil, err
		}
		pointers = append(pointers, p.Results...)

		next = ""
		if p.Next != nil {
			next = *p.Next
		}
	}

	return pointers, nil
}

// FetchResource fetches one pointed-to resource after waiting for its pacing slot.
func (c *Client) FetchResource(ctx context.Context, url string) (record.Raw, error) {
	if err := c.Wait(ctx); err != nil {
		return nil, &apperrors.FetchError{URL: url, Err: err}
	}

	var r record.Raw
	if err := c.GetJSON(ctx, url, &r); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &apperrors.FetchError{URL: url, Err: fmt.Errorf("empty resource")}
	}
	return r, nil
}
