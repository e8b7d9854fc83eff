package usecase

import (
	"strings"
	"testing"

	"github.com/SparrowtheDon/email-checker/internal/verifier/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestToCSV(t *testing.T) {
	results := []entity.Result{
		{Email: "a@x.com", Status: "valid", SubStatus: nil},
		{Email: "b@x.com", Status: "invalid", SubStatus: strPtr("mailbox_not_found")},
		entity.ErrorResult("c@x.com"),
	}

	want := "Email,Status,Sub-status\n" +
		"a@x.com,valid,\n" +
		"b@x.com,invalid,mailbox_not_found\n" +
		"c@x.com,error,network_error\n"

	assert.Equal(t, want, string(ToCSV(results)))
}

func TestToCSVEmpty(t *testing.T) {
	assert.Equal(t, "Email,Status,Sub-status\n", string(ToCSV(nil)))
}

func TestToCSVQuotesSpecialFields(t *testing.T) {
	out := string(ToCSV([]entity.Result{
		{Email: `"odd,one"@x.com`, Status: "valid"},
	}))

	assert.Equal(t, "Email,Status,Sub-status\n\"\"\"odd,one\"\"@x.com\",valid,\n", out)
}

func TestToCSVRoundTrip(t *testing.T) {
	results := []entity.Result{
		{Email: "a@x.com", Status: "valid"},
		{Email: "b,c@x.com", Status: "catch-all", SubStatus: strPtr("")},
		entity.ErrorResult("d@x.com"),
	}

	var got []entity.Result
	for row, err := range Rows(strings.NewReader(string(ToCSV(results)))) {
		require.NoError(t, err)
		email, _ := row.Get("Email")
		status, _ := row.Get("Status")
		sub, _ := row.Get("Sub-status")
		got = append(got, entity.Result{Email: email, Status: status, SubStatus: strPtr(sub)})
	}

	require.Len(t, got, len(results))
	for i := range results {
		assert.Equal(t, results[i].Email, got[i].Email)
		assert.Equal(t, results[i].Status, got[i].Status)
		assert.Equal(t, results[i].SubStatusOrEmpty(), got[i].SubStatusOrEmpty())
	}
}
