package planfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	plancheckerrors "github.com/plancheck/plancheck/pkg/errors"
)

func snapshotFixture(t *testing.T) *Snapshot {
	t.Helper()
	root := decode(t, `{
		"storage": {
			"bucket": {
				"encryption": {"enabled": true},
				"tags": [{"key": "env", "value": "prod"}, {"key": "team", "value": "infra"}]
			}
		},
		"resources": [
			{"type": "aws_s3_bucket", "name": "logs"},
			{"type": "aws_s3_bucket", "name": "assets"},
			{"type": "aws_cloudfront_distribution", "name": "cdn"}
		]
	}`)
	return NewSnapshot("plan.json", root)
}

func TestLookupResolvesNestedPath(t *testing.T) {
	t.Parallel()

	snap := snapshotFixture(t)

	v, err := snap.Lookup("storage.bucket.encryption.enabled")
	require.NoError(t, err)
	require.Equal(t, KindBool, v.Kind())
	require.True(t, v.BoolVal())
}

func TestLookupResolvesIndexedPath(t *testing.T) {
	t.Parallel()

	snap := snapshotFixture(t)

	v, err := snap.Lookup("storage.bucket.tags[1].key")
	require.NoError(t, err)
	require.Equal(t, "team", v.Str())

	v, err = snap.Lookup("resources[2].type")
	require.NoError(t, err)
	require.Equal(t, "aws_cloudfront_distribution", v.Str())
}

func TestLookupAbsentPathIsNotFound(t *testing.T) {
	t.Parallel()

	snap := snapshotFixture(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing key", "storage.bucket.lifecycle"},
		{"missing root key", "network.vpc"},
		{"index out of range", "resources[9].type"},
		{"key on a leaf", "storage.bucket.encryption.enabled.extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := snap.Lookup(tt.path)
			require.ErrorIs(t, err, ErrNotFound)

			var pathErr *plancheckerrors.PathError
			require.False(t, errors.As(err, &pathErr), "absence must not be reported as a syntax error")
		})
	}
}

func TestLookupMalformedPathIsPathError(t *testing.T) {
	t.Parallel()

	snap := snapshotFixture(t)

	tests := []struct {
		name string
		path string
	}{
		{"empty expression", ""},
		{"blank expression", "   "},
		{"empty segment", "storage..bucket"},
		{"trailing dot", "storage.bucket."},
		{"bare index", "[0].type"},
		{"unterminated index", "resources[2.type"},
		{"non-numeric index", "resources[two].type"},
		{"negative index", "resources[-1].type"},
		{"garbage after index", "resources[0]x.type"},
		{"stray close bracket", "resources]0[.type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := snap.Lookup(tt.path)
			var pathErr *plancheckerrors.PathError
			require.True(t, errors.As(err, &pathErr), "expected PathError, got %v", err)
		})
	}
}

func TestResourcesFiltersByType(t *testing.T) {
	t.Parallel()

	snap := snapshotFixture(t)

	buckets := snap.Resources("aws_s3_bucket")
	require.Len(t, buckets, 2)

	cdns := snap.Resources("aws_cloudfront_distribution")
	require.Len(t, cdns, 1)

	require.Empty(t, snap.Resources("aws_wafv2_web_acl"))
}

func TestResourcesWithoutResourceList(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot("plan.json", decode(t, `{"storage": {}}`))
	require.Empty(t, snap.Resources("aws_s3_bucket"))
}
