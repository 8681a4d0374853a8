package datatable

type DisplayType string

const (
	DisplayText     DisplayType = "Text"
	DisplayDate     DisplayType = "Date"
	DisplayDateTime DisplayType = "DateTime"
)

const (
	SortingEnabled  = "Enabled"
	SortingDisabled = "Disabled"
)

// Column is one entry of a per-entity descriptor table. Descriptors are
// declared next to the handler that owns the list view, so adding a column
// is a compile-time change rather than a reflection lookup.
type Column struct {
	Name       string
	DisplayKey string // localization token; falls back to Name
	Type       DisplayType
	Params     []string
	Unsortable bool
	SortParams []string
}

// ColumnMeta is the shape the list view fetches once per load.
type ColumnMeta struct {
	Seq               int64    `json:"seq"`
	Name              string   `json:"name"`
	DisplayName       string   `json:"displayName"`
	IsVisible         bool     `json:"isVisible"`
	DisplayType       string   `json:"displayType"`
	DisplayParameters []string `json:"displayParameters,omitempty"`
	SortingType       string   `json:"sortingType"`
	SortingParameters []string `json:"sortingParameters,omitempty"`
}

// Describe resolves a descriptor table into client metadata. localize maps a
// display token to the current culture's text and may be nil.
func Describe(cols []Column, localize func(string) string) []ColumnMeta {
	meta := make([]ColumnMeta, 0, len(cols))
	for i, col := range cols {
		display := col.Name
		if col.DisplayKey != "" {
			display = col.DisplayKey
			// A token the catalog does not carry keeps the token text; the
			// header must never render blank.
			if localize != nil {
				if localized := localize(col.DisplayKey); localized != "" {
					display = localized
				}
			}
		}

		displayType := col.Type
		if displayType == "" {
			displayType = DisplayText
		}
		sorting := SortingEnabled
		if col.Unsortable {
			sorting = SortingDisabled
		}

		meta = append(meta, ColumnMeta{
			Seq:               int64(i),
			Name:              col.Name,
			DisplayName:       display,
			IsVisible:         true,
			DisplayType:       string(displayType),
			DisplayParameters: col.Params,
			SortingType:       sorting,
			SortingParameters: col.SortParams,
		})
	}
	return meta
}
