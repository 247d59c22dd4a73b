package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/basket/internal/model"
	"github.com/idilsaglam/basket/internal/shopping"
)

// resolveList finds a list by 1-based index (as printed by `lists`), full
// id, unique id prefix or exact title, in that order.
func resolveList(ctx context.Context, svc *shopping.Service, ref string) (shopping.ListSummary, error) {
	ref = strings.TrimSpace(ref)
	lists, err := svc.Lists(ctx)
	if err != nil {
		return shopping.ListSummary{}, err
	}
	if ref == "" {
		return shopping.ListSummary{}, usage(fmt.Errorf("empty list reference"))
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(lists) {
			return shopping.ListSummary{}, usage(fmt.Errorf("index out of range: have %d lists, got %d", len(lists), n))
		}
		return lists[n-1], nil
	}

	var byPrefix, byTitle []shopping.ListSummary
	for _, l := range lists {
		if l.ID == ref {
			return l, nil
		}
		if strings.HasPrefix(l.ID, ref) {
			byPrefix = append(byPrefix, l)
		}
		if l.Title == ref {
			byTitle = append(byTitle, l)
		}
	}
	switch {
	case len(byPrefix) == 1:
		return byPrefix[0], nil
	case len(byPrefix) > 1:
		return shopping.ListSummary{}, usage(fmt.Errorf("id prefix %q matches %d lists", ref, len(byPrefix)))
	case len(byTitle) == 1:
		return byTitle[0], nil
	case len(byTitle) > 1:
		return shopping.ListSummary{}, usage(fmt.Errorf("%d lists are named %q, use the index or id", len(byTitle), ref))
	}
	return shopping.ListSummary{}, usage(fmt.Errorf("no list matches %q", ref))
}

// resolveItem finds an item in any list by full id or unique id prefix.
func resolveItem(ctx context.Context, svc *shopping.Service, ref string) (model.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Item{}, usage(fmt.Errorf("empty item reference"))
	}
	lists, err := svc.Lists(ctx)
	if err != nil {
		return model.Item{}, err
	}
	var matches []model.Item
	for _, l := range lists {
		items, err := svc.Items(ctx, l.ID)
		if err != nil {
			return model.Item{}, err
		}
		for _, it := range items {
			if it.ID == ref {
				return it, nil
			}
			if strings.HasPrefix(it.ID, ref) {
				matches = append(matches, it)
			}
		}
	}
	switch len(matches) {
	case 0:
		return model.Item{}, usage(fmt.Errorf("no item matches %q (ids are shown by `show --ids`)", ref))
	case 1:
		return matches[0], nil
	}
	return model.Item{}, usage(fmt.Errorf("id prefix %q matches %d items", ref, len(matches)))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
