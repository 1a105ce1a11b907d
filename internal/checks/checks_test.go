package checks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plancheck/plancheck/internal/model"
	"github.com/plancheck/plancheck/internal/planfile"
	"github.com/plancheck/plancheck/internal/suite"
)

func loadFixture(t *testing.T) *planfile.Snapshot {
	t.Helper()
	snap, err := planfile.NewStore("testdata/plan.json").Load()
	require.NoError(t, err)
	return snap
}

func TestBuiltinModulesPassAgainstFixture(t *testing.T) {
	t.Parallel()

	snap := loadFixture(t)

	for _, mod := range All() {
		mod := mod
		t.Run(mod.Name, func(t *testing.T) {
			t.Parallel()

			result := suite.Run(context.Background(), mod, snap, 5*time.Second)
			require.Equal(t, model.StatusPass, result.Status, result.Message)
			for _, cr := range result.Cases {
				require.Equal(t, model.StatusPass, cr.Status, cr.Message)
			}
		})
	}
}

func TestRegisterAddsEveryModule(t *testing.T) {
	t.Parallel()

	reg := suite.NewRegistry()
	require.NoError(t, Register(reg))
	require.Equal(t, len(All()), reg.Len())
	require.Equal(t, []string{"cloudfront", "iam", "monitoring", "s3", "waf"}, reg.Names())
}

func TestS3ModuleFlagsUnencryptedBucket(t *testing.T) {
	t.Parallel()

	var doc any
	err := json.Unmarshal([]byte(`{
		"resources": [{"type": "aws_s3_bucket", "name": "open"}],
		"storage": {
			"bucket": {
				"name": "open",
				"encryption": {"enabled": false, "algorithm": "aws:kms"},
				"versioning": {"enabled": true},
				"public_access_block": {
					"block_public_acls": true,
					"block_public_policy": true
				}
			}
		}
	}`), &doc)
	require.NoError(t, err)
	snap := planfile.NewSnapshot("fixture", planfile.FromAny(doc))

	result := suite.Run(context.Background(), S3(), snap, 5*time.Second)
	require.Equal(t, model.StatusFail, result.Status)

	var failing []string
	for _, cr := range result.Cases {
		if cr.Status == model.StatusFail {
			failing = append(failing, cr.Name)
		}
	}
	require.Equal(t, []string{"encryption_at_rest"}, failing)
}
