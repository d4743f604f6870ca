package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tomlord1122/todoey/internal/domain"
	"github.com/Tomlord1122/todoey/internal/service"
)

// pick finds the single candidate whose ID equals ref, whose ID starts with
// ref, or whose name equals ref ignoring case, in that order of preference.
func pick[T any](kind, ref string, candidates []T, id, name func(T) string) (T, error) {
	var zero T
	for _, c := range candidates {
		if id(c) == ref {
			return c, nil
		}
	}

	matchers := []func(T) bool{
		func(c T) bool { return strings.HasPrefix(id(c), ref) },
		func(c T) bool { return strings.EqualFold(name(c), ref) },
	}
	for _, match := range matchers {
		var found []T
		for _, c := range candidates {
			if match(c) {
				found = append(found, c)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			return zero, fmt.Errorf("%s %q is ambiguous: %d matches", kind, ref, len(found))
		}
	}
	return zero, fmt.Errorf("%s %q not found", kind, ref)
}

func (c *cli) resolveSection(ctx context.Context, ref string) (*domain.Section, error) {
	rec := &service.Recorder[domain.Section]{}
	c.sections.WithObserver(rec).FetchSections(ctx)
	all, err := rec.Result()
	if err != nil {
		return nil, err
	}
	section, err := pick("section", ref, all,
		func(s domain.Section) string { return s.ID },
		func(s domain.Section) string { return s.Name })
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (c *cli) resolveItem(ctx context.Context, section *domain.Section, ref string) (*domain.Item, error) {
	rec := &service.Recorder[domain.Item]{}
	c.items.WithObserver(rec).FetchItems(ctx, service.ItemQuery{SectionID: section.ID, ShowCompleted: true})
	all, err := rec.Result()
	if err != nil {
		return nil, err
	}
	item, err := pick("item", ref, all,
		func(i domain.Item) string { return i.ID },
		func(i domain.Item) string { return i.Name })
	if err != nil {
		return nil, err
	}
	return &item, nil
}
