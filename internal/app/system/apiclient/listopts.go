// internal/app/system/apiclient/listopts.go
package apiclient

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/dalemusser/raizes/internal/domain/models"
)

// ListOptions narrows a list call.
//
// Sort names a field, prefixed with "-" for descending ("-created_date").
// Limit caps the result (0 means no cap). Where holds field equality filters.
//
// The options are forwarded to the backend as _sort, _order, _limit and
// field=value parameters, and are applied again to the decoded response.
// Results therefore do not depend on whether the backend honours them.
type ListOptions struct {
	Sort  string
	Limit int
	Where map[string]string
}

// Query renders the options as backend query parameters.
func (o ListOptions) Query() url.Values {
	q := url.Values{}
	if field, desc := o.sortField(); field != "" {
		q.Set("_sort", field)
		if desc {
			q.Set("_order", "desc")
		} else {
			q.Set("_order", "asc")
		}
	}
	if o.Limit > 0 {
		q.Set("_limit", strconv.Itoa(o.Limit))
	}
	for k, v := range o.Where {
		q.Set(k, v)
	}
	return q
}

func (o ListOptions) sortField() (string, bool) {
	s := strings.TrimSpace(o.Sort)
	if strings.HasPrefix(s, "-") {
		return s[1:], true
	}
	return strings.TrimPrefix(s, "+"), false
}

// apply filters, sorts and truncates raw records in place of the backend.
func (o ListOptions) apply(raw []json.RawMessage) ([]json.RawMessage, error) {
	field, desc := o.sortField()
	if len(o.Where) == 0 && field == "" && (o.Limit <= 0 || len(raw) <= o.Limit) {
		return raw, nil
	}

	type row struct {
		raw    json.RawMessage
		fields map[string]any
	}
	rows := make([]row, 0, len(raw))
	for i, r := range raw {
		var fields map[string]any
		if err := json.Unmarshal(r, &fields); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if !matchesWhere(fields, o.Where) {
			continue
		}
		rows = append(rows, row{raw: r, fields: fields})
	}

	if field != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			c := models.CompareValues(rows[i].fields[field], rows[j].fields[field])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	if o.Limit > 0 && len(rows) > o.Limit {
		rows = rows[:o.Limit]
	}

	out := make([]json.RawMessage, len(rows))
	for i, r := range rows {
		out[i] = r.raw
	}
	return out, nil
}

func matchesWhere(fields map[string]any, where map[string]string) bool {
	for k, want := range where {
		if !models.FieldMatches(fields[k], want) {
			return false
		}
	}
	return true
}
