package export

import (
	"sort"
	"strings"
)

// ColumnSet restricts pool CSV output to a fixed column list, with
// duplicate rows collapsed into a launch_config_count column.
type ColumnSet struct {
	Name        string
	Description string
	Columns     []string
}

var poolColumns = []string{
	"workerPoolId", "providerId", "created", "lastModified", "owner",
}

// ColumnSets are the named restricted views for `pools --csv-set`.
var ColumnSets = map[string]ColumnSet{
	"images": {
		Name:        "images",
		Description: "unique machine images across all clouds",
		Columns: append(append([]string{}, poolColumns...),
			"lc_region",
			"lc_launchConfig_ImageId",
			"lc_disks_0_initializeParams_sourceImage",
			"lc_location",
			"lc_storageProfile_imageReference_id",
		),
	},
	"aws-images": {
		Name:        "aws-images",
		Description: "unique AMIs per region",
		Columns: append(append([]string{}, poolColumns...),
			"lc_region",
			"lc_launchConfig_ImageId",
		),
	},
	"gcp-images": {
		Name:        "gcp-images",
		Description: "unique GCP source images per region",
		Columns: append(append([]string{}, poolColumns...),
			"lc_region",
			"lc_disks_0_initializeParams_sourceImage",
		),
	},
	"azure-images": {
		Name:        "azure-images",
		Description: "unique Azure image references per location",
		Columns: append(append([]string{}, poolColumns...),
			"lc_location",
			"lc_storageProfile_imageReference_id",
		),
	},
}

// SetNames returns the available column set names, sorted.
func SetNames() []string {
	names := make([]string, 0, len(ColumnSets))
	for name := range ColumnSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetDescriptions renders "name=description" pairs for flag help.
func SetDescriptions() string {
	var parts []string
	for _, name := range SetNames() {
		parts = append(parts, name+"="+ColumnSets[name].Description)
	}
	return strings.Join(parts, ", ")
}

// ApplySet projects rows onto the set's columns, collapses duplicates,
// and appends a launch_config_count column with the number of launch
// configs behind each remaining row. Rows come back sorted by their
// column values. The returned headers are the set's columns plus
// launch_config_count.
func ApplySet(rows []map[string]any, set ColumnSet) ([]map[string]any, []string) {
	counts := map[string]int{}
	values := map[string][]string{}

	for _, row := range rows {
		tuple := make([]string, len(set.Columns))
		for i, col := range set.Columns {
			if val, ok := row[col]; ok {
				tuple[i] = formatCell(val)
			}
		}
		key := strings.Join(tuple, "\x1f")
		counts[key]++
		values[key] = tuple
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]map[string]any, 0, len(keys))
	for _, key := range keys {
		row := make(map[string]any, len(set.Columns)+1)
		for i, col := range set.Columns {
			row[col] = values[key][i]
		}
		row["launch_config_count"] = counts[key]
		out = append(out, row)
	}

	headers := append(append([]string{}, set.Columns...), "launch_config_count")
	return out, headers
}
