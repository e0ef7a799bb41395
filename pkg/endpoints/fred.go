package endpoints

// Shared optional parameter groups. params copies them so no two specs share
// a backing array.
var (
	realtimeParams = []Param{
		{Name: "realtime_start", Type: String},
		{Name: "realtime_end", Type: String},
	}
	pagingParams = []Param{
		{Name: "limit", Type: Integer},
		{Name: "offset", Type: Integer},
	}
	orderParams = []Param{
		{Name: "order_by", Type: String},
		{Name: "sort_order", Type: String},
	}
	seriesFilterParams = []Param{
		{Name: "filter_variable", Type: String},
		{Name: "filter_value", Type: String},
		{Name: "tag_names", Type: String},
		{Name: "exclude_tag_names", Type: String},
	}
	tagSearchParams = []Param{
		{Name: "tag_group_id", Type: String},
		{Name: "search_text", Type: String},
	}
)

func params(groups ...[]Param) []Param {
	var out []Param
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func required(names ...string) []Param {
	out := make([]Param, len(names))
	for i, n := range names {
		out[i] = Param{Name: n, Type: String}
	}
	return out
}

func requiredInt(names ...string) []Param {
	out := make([]Param, len(names))
	for i, n := range names {
		out[i] = Param{Name: n, Type: Integer}
	}
	return out
}

// FRED returns the built-in FRED endpoint table in registry order.
func FRED() []EndpointSpec {
	return []EndpointSpec{
		{
			Name:        "category",
			Path:        "category",
			Required:    requiredInt("category_id"),
			Description: "Get a category.",
		},
		{
			Name:        "category_children",
			Path:        "category/children",
			Required:    requiredInt("category_id"),
			Optional:    params(realtimeParams),
			Description: "Get the child categories for a specified parent category.",
		},
		{
			Name:        "category_related",
			Path:        "category/related",
			Required:    requiredInt("category_id"),
			Optional:    params(realtimeParams),
			Description: "Get the related categories for a category.",
		},
		{
			Name:        "category_series",
			Path:        "category/series",
			Required:    requiredInt("category_id"),
			Optional:    params(realtimeParams, pagingParams, orderParams, seriesFilterParams),
			Description: "Get the series in a category.",
		},
		{
			Name:        "category_tags",
			Path:        "category/tags",
			Required:    requiredInt("category_id"),
			Optional:    params(realtimeParams, []Param{{Name: "tag_names", Type: String}}, tagSearchParams, pagingParams, orderParams),
			Description: "Get the FRED tags for a category.",
		},
		{
			Name:        "category_related_tags",
			Path:        "category/related_tags",
			Required:    append(requiredInt("category_id"), required("tag_names")...),
			Optional:    params(realtimeParams, []Param{{Name: "exclude_tag_names", Type: String}}, tagSearchParams, pagingParams, orderParams),
			Description: "Get the related FRED tags for one or more FRED tags within a category.",
		},
		{
			Name:        "series",
			Path:        "series",
			Required:    required("series_id"),
			Optional:    params(realtimeParams),
			Description: "Get an economic data series.",
		},
		{
			Name:        "series_categories",
			Path:        "series/categories",
			Required:    required("series_id"),
			Optional:    params(realtimeParams),
			Description: "Get the categories for an economic data series.",
		},
		{
			Name:     "series_observations",
			Path:     "series/observations",
			Required: required("series_id"),
			Optional: params(realtimeParams, pagingParams, []Param{
				{Name: "sort_order", Type: String},
				{Name: "observation_start", Type: String},
				{Name: "observation_end", Type: String},
				{Name: "units", Type: String},
				{Name: "frequency", Type: String},
				{Name: "aggregation_method", Type: String},
				{Name: "output_type", Type: Integer},
				{Name: "vintage_dates", Type: String},
			}),
			Description: "Get the observations or data values for an economic data series.",
		},
		{
			Name:        "series_search",
			Path:        "series/search",
			Required:    required("search_text"),
			Optional:    params([]Param{{Name: "search_type", Type: String}}, realtimeParams, pagingParams, orderParams, seriesFilterParams),
			Description: "Get economic data series that match search text.",
		},
		{
			Name:        "releases",
			Path:        "releases",
			Optional:    params(realtimeParams, pagingParams, orderParams),
			Description: "Get all releases of economic data.",
		},
		{
			Name:        "release",
			Path:        "release",
			Required:    requiredInt("release_id"),
			Optional:    params(realtimeParams),
			Description: "Get a release of economic data.",
		},
		{
			Name:        "release_series",
			Path:        "release/series",
			Required:    requiredInt("release_id"),
			Optional:    params(realtimeParams, pagingParams, orderParams, seriesFilterParams),
			Description: "Get the series on a release of economic data.",
		},
		{
			Name:        "sources",
			Path:        "sources",
			Optional:    params(realtimeParams, pagingParams, orderParams),
			Description: "Get all sources of economic data.",
		},
		{
			Name:        "source",
			Path:        "source",
			Required:    requiredInt("source_id"),
			Optional:    params(realtimeParams),
			Description: "Get a source of economic data.",
		},
		{
			Name:        "source_releases",
			Path:        "source/releases",
			Required:    requiredInt("source_id"),
			Optional:    params(realtimeParams, pagingParams, orderParams),
			Description: "Get the releases for a source.",
		},
		{
			Name:        "tags",
			Path:        "tags",
			Optional:    params(realtimeParams, []Param{{Name: "tag_names", Type: String}}, tagSearchParams, pagingParams, orderParams),
			Description: "Get FRED tags, optionally filtered by tag name, tag group or search.",
		},
		{
			Name:        "related_tags",
			Path:        "related_tags",
			Required:    required("tag_names"),
			Optional:    params(realtimeParams, []Param{{Name: "exclude_tag_names", Type: String}}, tagSearchParams, pagingParams, orderParams),
			Description: "Get the related FRED tags for one or more FRED tags.",
		},
		{
			Name:        "series_tags",
			Path:        "series/tags",
			Required:    required("series_id"),
			Optional:    params(realtimeParams, orderParams),
			Description: "Get the FRED tags for a series.",
		},
	}
}

var defaultRegistry = MustNew(FRED()...)

// Default returns the shared registry built from FRED().
func Default() *Registry {
	return defaultRegistry
}
