package assessment

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []*Assessment {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id, vendor, service, deploy string, st Status, day int) *Assessment {
		return &Assessment{
			ID:             id,
			VendorName:     vendor,
			ServiceName:    service,
			DeploymentType: deploy,
			Status:         st,
			SubmittedAt:    base.AddDate(0, 0, day),
			LastUpdated:    base.AddDate(0, 0, day+1),
		}
	}
	return []*Assessment{
		mk("1", "CloudTech Solutions", "Data Storage Service", "SaaS", StatusPending, 3),
		mk("2", "Acme", "Payroll", "On-premise", StatusApproved, 1),
		mk("3", "Zeta Corp", "Cloud Backup", "SaaS", StatusRejected, 2),
		mk("4", "Beta", "CRM", "Hybrid", StatusNeedsInfo, 0),
	}
}

func ids(list []*Assessment) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestFilter_SearchCaseInsensitive(t *testing.T) {
	list := fixture()
	for _, term := range []string{"cloud", "CLOUD", "Tech"} {
		got := Filter{Search: term}.Apply(list)
		assert.Contains(t, ids(got), "1", "term %q", term)
	}
	// service name match
	assert.Equal(t, []string{"1", "3"}, ids(Filter{Search: "cloud"}.Apply(list)))
}

func TestFilter_NoMatch(t *testing.T) {
	assert.Empty(t, Filter{Search: "nomatch123"}.Apply(fixture()))
}

func TestFilter_EmptySearchMatchesAll(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(Filter{}.Apply(fixture())))
}

func TestFilter_Status(t *testing.T) {
	st := StatusRejected
	got := Filter{Status: &st}.Apply(fixture())
	assert.Equal(t, []string{"3"}, ids(got))

	st = StatusApproved
	got = Filter{Search: "cloud", Status: &st}.Apply(fixture())
	assert.Empty(t, got)
}

func TestParseStatusFilter(t *testing.T) {
	f, err := ParseStatusFilter("all")
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = ParseStatusFilter("")
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = ParseStatusFilter("needs_info")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, StatusNeedsInfo, *f)
	assert.Equal(t, "needs_info", Filter{Status: f}.StatusLabel())
	assert.Equal(t, "all", Filter{}.StatusLabel())

	_, err = ParseStatusFilter("done")
	assert.ErrorIs(t, err, common.ErrorInvalidStatus)
}

func TestSortState_ToggleCycle(t *testing.T) {
	var s SortState
	s = s.Toggle(ColumnVendorName)
	assert.Equal(t, SortState{ColumnVendorName, Ascending}, s)
	s = s.Toggle(ColumnVendorName)
	assert.Equal(t, SortState{ColumnVendorName, Descending}, s)
	s = s.Toggle(ColumnVendorName)
	assert.False(t, s.Active())
}

func TestSortState_ToggleOtherColumnStartsAscending(t *testing.T) {
	s := SortState{ColumnVendorName, Descending}
	s = s.Toggle(ColumnStatus)
	assert.Equal(t, SortState{ColumnStatus, Ascending}, s)
}

func TestSortState_ThirdToggleRestoresSourceOrder(t *testing.T) {
	list := fixture()
	for _, col := range Columns() {
		var s SortState
		for i := 0; i < 3; i++ {
			s = s.Toggle(col)
		}
		assert.Equal(t, []string{"1", "2", "3", "4"}, ids(s.Sort(list)), "column %s", col)
	}
}

func TestSortState_Sort(t *testing.T) {
	list := fixture()
	tests := []struct {
		col  Column
		dir  Direction
		want []string
	}{
		{ColumnVendorName, Ascending, []string{"2", "4", "1", "3"}},
		{ColumnVendorName, Descending, []string{"3", "1", "4", "2"}},
		{ColumnSubmittedAt, Ascending, []string{"4", "2", "3", "1"}},
		{ColumnLastUpdated, Descending, []string{"1", "3", "2", "4"}},
		{ColumnStatus, Ascending, []string{"2", "4", "1", "3"}},
		{ColumnServiceName, Ascending, []string{"3", "4", "1", "2"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.col)+"_"+tt.dir.String(), func(t *testing.T) {
			got := SortState{tt.col, tt.dir}.Sort(list)
			assert.Equal(t, tt.want, ids(got))
		})
	}
	// input untouched
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(list))
}

func TestSortState_Stable(t *testing.T) {
	list := fixture()
	got := SortState{ColumnDeploymentType, Ascending}.Sort(list)
	assert.Equal(t, []string{"4", "2", "1", "3"}, ids(got))
}

func TestParseColumn(t *testing.T) {
	c, err := ParseColumn("VendorName")
	require.NoError(t, err)
	assert.Equal(t, ColumnVendorName, c)

	_, err = ParseColumn("useCase")
	assert.ErrorIs(t, err, common.ErrorInvalidColumn)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, Descending, d)

	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Unsorted, d)

	_, err = ParseDirection("up")
	assert.ErrorIs(t, err, common.ErrorInvalidRequest)
}

func TestView_FilterThenSort(t *testing.T) {
	got := View(fixture(), Filter{Search: "c"}, SortState{ColumnVendorName, Ascending})
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(got))
}

func TestParseQuery(t *testing.T) {
	f, s, err := ParseQuery("cloud", "rejected", "vendorName", "")
	require.NoError(t, err)
	assert.Equal(t, "cloud", f.Search)
	require.NotNil(t, f.Status)
	assert.Equal(t, StatusRejected, *f.Status)
	assert.Equal(t, SortState{Column: ColumnVendorName, Direction: Ascending}, s)

	f, s, err = ParseQuery("", "all", "", "desc")
	require.NoError(t, err)
	assert.Nil(t, f.Status)
	assert.False(t, s.Active())

	_, _, err = ParseQuery("", "bogus", "", "")
	assert.ErrorIs(t, err, common.ErrorInvalidStatus)

	_, _, err = ParseQuery("", "", "contactEmail", "")
	assert.ErrorIs(t, err, common.ErrorInvalidColumn)

	_, _, err = ParseQuery("", "", "status", "sideways")
	assert.ErrorIs(t, err, common.ErrorInvalidRequest)
}

func TestSortState_NaturalCaseInsensitive(t *testing.T) {
	names := []string{"Beta", "Vendor 10", "Vendor 9", "acme", "vendor 2"}
	list := make([]*Assessment, 0, len(names))
	for _, n := range names {
		list = append(list, &Assessment{ID: n, VendorName: n})
	}

	got := SortState{ColumnVendorName, Ascending}.Sort(list)
	assert.Equal(t, []string{"acme", "Beta", "vendor 2", "Vendor 9", "Vendor 10"}, ids(got))

	got = SortState{ColumnVendorName, Descending}.Sort(list)
	assert.Equal(t, []string{"Vendor 10", "Vendor 9", "vendor 2", "Beta", "acme"}, ids(got))
}

func TestNaturalCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "B", -1},
		{"B", "a", 1},
		{"ACME", "acme", 0},
		{"item 9", "item 10", -1},
		{"item 010", "item 10", 0},
		{"x2y", "x2z", -1},
		{"v1.10", "v1.9", 1},
		{"", "a", -1},
		{"abc", "ab", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, naturalCompare(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestFilter_SearchAndStatusCommute(t *testing.T) {
	statuses := []*Status{nil}
	for _, st := range Statuses() {
		statuses = append(statuses, &st)
	}

	for _, term := range []string{"", "c", "CLOUD", "crm", "storage", "nomatch"} {
		for _, st := range statuses {
			name := term + "_" + Filter{Status: st}.StatusLabel()
			t.Run(name, func(t *testing.T) {
				list := fixture()
				search := Filter{Search: term}
				status := Filter{Status: st}

				searchFirst := status.Apply(search.Apply(list))
				statusFirst := search.Apply(status.Apply(list))
				combined := Filter{Search: term, Status: st}.Apply(list)

				assert.Equal(t, ids(combined), ids(searchFirst))
				assert.Equal(t, ids(combined), ids(statusFirst))
			})
		}
	}
}
