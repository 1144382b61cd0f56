package dto_test

import (
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"hotel/shared/timezone"
	"net/http"
	"net/url"
	"testing"
	"time"
)

func TestMetadata_FromModel(t *testing.T) {
	source := model.Metadata{
		CreatedAt:  time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		ModifiedAt: time.Date(2024, 3, 2, 14, 0, 0, 0, time.UTC),
		CreatedBy:  "frontdesk@hotel.test",
		ModifiedBy: "manager@hotel.test",
	}

	var metadata dto.Metadata
	metadata.FromModel(source)

	if metadata != dto.NewMetadata(source) {
		t.Errorf("expected FromModel to match NewMetadata, got %+v", metadata)
	}

	if want := timezone.Format(source.CreatedAt, constant.DateFormat); metadata.CreatedAt != want {
		t.Errorf("expected CreatedAt %s, got %s", want, metadata.CreatedAt)
	}

	if want := timezone.Format(source.ModifiedAt, constant.DateFormat); metadata.ModifiedAt != want {
		t.Errorf("expected ModifiedAt %s, got %s", want, metadata.ModifiedAt)
	}

	if metadata.CreatedBy != source.CreatedBy || metadata.ModifiedBy != source.ModifiedBy {
		t.Errorf("expected actors to be copied, got %+v", metadata)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "name",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "name",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    0,
				Limit:   0,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with negative page parameter",
			queryParams: map[string]string{
				"page": "-1",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with zero page parameter",
			queryParams: map[string]string{
				"page": "0",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid limit parameter",
			queryParams: map[string]string{
				"limit": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with negative limit parameter",
			queryParams: map[string]string{
				"limit": "-10",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with partial parameters and defaults enabled",
			queryParams: map[string]string{
				"page":    "3",
				"sort_by": "email",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    3,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "email",
				SortDir: "", // Empty when not provided
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a URL with query parameters
			baseURL := "http://example.com/test"
			u, err := url.Parse(baseURL)
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			// Add query parameters
			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			// Create HTTP request
			req, err := http.NewRequest("GET", u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			// Test the method
			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			// Verify results
			if queryParams.Page != tt.expected.Page {
				t.Errorf("expected Page to be %d, got %d", tt.expected.Page, queryParams.Page)
			}
			if queryParams.Limit != tt.expected.Limit {
				t.Errorf("expected Limit to be %d, got %d", tt.expected.Limit, queryParams.Limit)
			}
			if queryParams.SortBy != tt.expected.SortBy {
				t.Errorf("expected SortBy to be %s, got %s", tt.expected.SortBy, queryParams.SortBy)
			}
			if queryParams.SortDir != tt.expected.SortDir {
				t.Errorf("expected SortDir to be %s, got %s", tt.expected.SortDir, queryParams.SortDir)
			}
		})
	}
}

func TestSortDirectionConstants(t *testing.T) {
	if dto.SortDirAsc != "ASC" {
		t.Errorf("expected SortDirAsc to be 'ASC', got %s", dto.SortDirAsc)
	}
	if dto.SortDirDesc != "DESC" {
		t.Errorf("expected SortDirDesc to be 'DESC', got %s", dto.SortDirDesc)
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: "room-1", Operator: dto.FilterOperatorEq, Table: "bookings"},
			dto.Filter{Field: "check_in_date", ArgName: "window_end", Value: "2024-01-12", Operator: dto.FilterOperatorLess},
			dto.Filter{Field: "check_out_date", ArgName: "window_start", Value: "2024-01-10", Operator: dto.FilterOperatorGreater},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", Value: []string{"Confirmed", "Checked In"}, Operator: dto.FilterOperatorIn},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	expected := "(bookings.room_id = :room_id AND check_in_date < :window_end AND check_out_date > :window_start AND (status IN (:status_0, :status_1) ))"
	if where != expected {
		t.Errorf("expected where clause %q, got %q", expected, where)
	}

	if len(args) != 5 {
		t.Errorf("expected 5 args, got %d", len(args))
	}

	if args["window_end"] != "2024-01-12" || args["status_1"] != "Checked In" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestQueryParams_WithDefaultSort(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 10}.WithDefaultSort("check_in_date", dto.SortDirDesc)

	if params.SortBy != "check_in_date" || params.SortDir != dto.SortDirDesc {
		t.Errorf("expected default sort to be applied, got %s %s", params.SortBy, params.SortDir)
	}

	if params.Offset() != 10 {
		t.Errorf("expected offset 10, got %d", params.Offset())
	}

	explicit := dto.QueryParams{SortBy: "room_number", SortDir: dto.SortDirAsc}.WithDefaultSort("check_in_date", dto.SortDirDesc)
	if explicit.SortBy != "room_number" || explicit.SortDir != dto.SortDirAsc {
		t.Errorf("expected explicit sort to win, got %s %s", explicit.SortBy, explicit.SortDir)
	}
}

func TestFilterEmptyInMatchesNothing(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorIn, Table: "guests"},
			dto.Filter{Field: "phone", Operator: "unknown"},
		},
	}

	where, args := group.GetWhereClause()

	if where != "(FALSE)" {
		t.Errorf("expected (FALSE), got %q", where)
	}

	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}
