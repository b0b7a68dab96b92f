package testdata

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func RequireEqualSlice[T any](t require.TestingT, expected []T, actual []T, msgAndArgs ...any) {
	if AssertEqualSlice(t, expected, actual, msgAndArgs...) {
		return
	}
	t.FailNow()
}

// AssertEqualSlice compares element-wise and order-sensitively, and treats nil and empty as different.
func AssertEqualSlice[T any](t require.TestingT, expected []T, actual []T, msgAndArgs ...any) bool {
	if (expected == nil) != (actual == nil) {
		return assert.Fail(t, fmt.Sprintf("Not equal: \n"+
			"expected nil: %t\n"+
			"actual nil  : %t", expected == nil, actual == nil), msgAndArgs...)
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		return assert.Fail(t, fmt.Sprintf("Not equal: \n"+
			"expected: %#v\n"+
			"actual  : %#v\n%s", expected, actual, diff), msgAndArgs...)
	}
	return true
}

func WaitFor[T any](t *testing.T, f func(c *assert.CollectT) (T, error)) T {
	var res T
	var failFastError error
	require.EventuallyWithT(t, func(c *assert.CollectT) {
		res, failFastError = f(c)
	}, 10*time.Second, 50*time.Millisecond, "WaitFor method timed out after 10 seconds of retries")
	require.NoErrorf(t, failFastError, "WaitFor method failed with error: %v", failFastError)
	return res
}
