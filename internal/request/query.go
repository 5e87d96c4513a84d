package request

import (
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/capripot/rswag/internal/openapi"
)

// OpenAPI 3 query parameter styles.
const (
	styleForm           = "form"
	styleDeepObject     = "deepObject"
	styleSpaceDelimited = "spaceDelimited"
	stylePipeDelimited  = "pipeDelimited"
)

// Swagger 2.0 collection formats.
const (
	collectionCSV   = "csv"
	collectionSSV   = "ssv"
	collectionTSV   = "tsv"
	collectionPipes = "pipes"
	collectionMulti = "multi"
)

// serializeQuery encodes one OpenAPI 3 query parameter. Parameters without a
// schema produce an empty fragment.
//
//	style           explode  array [a,b]        object {k: v}
//	form            true     tags=a&tags=b      k=v
//	form            false    tags=a,b           obj=k,v
//	spaceDelimited  false    tags=a%20b
//	pipeDelimited   false    tags=a|b
//	deepObject      -                           obj[k]=v
func serializeQuery(p *openapi.Parameter, value any) string {
	if p.Schema == nil {
		return ""
	}

	name := url.QueryEscape(p.Name)
	style := p.Style
	if style == "" {
		style = styleForm
	}
	explode := p.Explode == nil || *p.Explode

	switch p.Schema.TypeName() {
	case openapi.TypeObject:
		obj := toObject(value)
		keys := sortedKeys(obj)
		switch style {
		case styleDeepObject:
			pairs := make([]string, 0, len(keys))
			for _, k := range keys {
				pairs = append(pairs, name+"["+url.QueryEscape(k)+"]="+escape(obj[k]))
			}
			return strings.Join(pairs, "&")
		case styleForm:
			if explode {
				pairs := make([]string, 0, len(keys))
				for _, k := range keys {
					pairs = append(pairs, url.QueryEscape(k)+"="+escape(obj[k]))
				}
				return strings.Join(pairs, "&")
			}
			parts := make([]string, 0, 2*len(keys))
			for _, k := range keys {
				parts = append(parts, url.QueryEscape(k), escape(obj[k]))
			}
			return name + "=" + strings.Join(parts, ",")
		}
		return ""

	case openapi.TypeArray:
		items := toList(value)
		if explode {
			return repeat(name, items)
		}
		sep := ","
		switch style {
		case styleSpaceDelimited:
			sep = "%20"
		case stylePipeDelimited:
			sep = "|"
		}
		return name + "=" + join(items, sep)
	}

	return name + "=" + escape(value)
}

// serializeCollection encodes one Swagger 2.0 query parameter, honouring
// collectionFormat for arrays.
func serializeCollection(p *openapi.Parameter, value any) string {
	name := url.QueryEscape(p.Name)
	if p.Type != openapi.TypeArray {
		return name + "=" + escape(value)
	}

	items := toList(value)
	switch p.CollectionFormat {
	case collectionMulti:
		return repeat(name, items)
	case collectionSSV:
		return name + "=" + join(items, "%20")
	case collectionTSV:
		return name + "=" + join(items, "%09")
	case collectionPipes:
		return name + "=" + join(items, "|")
	default:
		return name + "=" + join(items, ",")
	}
}

func escape(v any) string {
	return url.QueryEscape(stringify(v))
}

func repeat(name string, items []any) string {
	pairs := make([]string, 0, len(items))
	for _, item := range items {
		pairs = append(pairs, name+"="+escape(item))
	}
	return strings.Join(pairs, "&")
}

func join(items []any, sep string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, escape(item))
	}
	return strings.Join(parts, sep)
}

// toList flattens nested slices into one list. A non-slice value becomes a
// single-element list.
func toList(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, toList(rv.Index(i).Interface())...)
	}
	return out
}

// toObject converts any map with string-like keys to map[string]any.
func toObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[stringify(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
