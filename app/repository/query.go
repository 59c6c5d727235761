package repository

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// ListOptions carries caller-supplied query parameters for list endpoints.
type ListOptions struct {
	// Select limits returned fields, comma separated ("name,description").
	Select string
	// Sort is a comma separated field list; a leading '-' means descending.
	Sort string
	// Page is 1-based.
	Page  int64
	Limit int64
}

// Normalized clamps page and limit to usable values.
func (o ListOptions) Normalized() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = defaultPageSize
	}
	if o.Limit > maxPageSize {
		o.Limit = maxPageSize
	}
	return o
}

func (o ListOptions) skip() int64 {
	o = o.Normalized()
	return (o.Page - 1) * o.Limit
}

func sortSpec(sort string) bson.D {
	spec := bson.D{}
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		spec = append(spec, bson.E{Key: field, Value: order})
	}
	return spec
}

func projectionSpec(selectFields string) bson.D {
	spec := bson.D{}
	for _, field := range strings.Split(selectFields, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		spec = append(spec, bson.E{Key: field, Value: 1})
	}
	return spec
}

func findOptions(o ListOptions) *options.FindOptionsBuilder {
	o = o.Normalized()

	opts := options.Find().SetSkip(o.skip()).SetLimit(o.Limit)
	if spec := sortSpec(o.Sort); len(spec) > 0 {
		opts = opts.SetSort(spec)
	} else {
		opts = opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}
	if spec := projectionSpec(o.Select); len(spec) > 0 {
		opts = opts.SetProjection(spec)
	}
	return opts
}
