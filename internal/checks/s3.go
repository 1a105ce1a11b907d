package checks

import (
	"github.com/plancheck/plancheck/internal/assert"
	"github.com/plancheck/plancheck/internal/model"
	"github.com/plancheck/plancheck/internal/planfile"
	"github.com/plancheck/plancheck/internal/suite"
)

// S3 validates the object storage portion of the plan: at least one bucket,
// encryption at rest, versioning, and a full public access block.
func S3() suite.Module {
	return suite.Module{
		Name:        "s3",
		Description: "S3 bucket encryption, versioning and public access",
		Cases: []suite.Case{
			{
				Name: "buckets_declared",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.ResourceCount("bucket_count", snap, "aws_s3_bucket", 1, assert.CountGte),
						assert.NotEmptyAt("bucket_named", snap, "storage.bucket.name"),
					}
				},
			},
			{
				Name: "encryption_at_rest",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.ValueAt("encryption_enabled", snap, "storage.bucket.encryption.enabled", planfile.Bool(true)),
						assert.ValueAt("sse_algorithm", snap, "storage.bucket.encryption.algorithm", planfile.String("aws:kms")),
					}
				},
			},
			{
				Name: "versioning_enabled",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.ValueAt("versioning", snap, "storage.bucket.versioning.enabled", planfile.Bool(true)),
					}
				},
			},
			{
				Name: "public_access_blocked",
				Check: func(snap *planfile.Snapshot) []model.AssertionResult {
					return []model.AssertionResult{
						assert.ValueAt("block_public_acls", snap, "storage.bucket.public_access_block.block_public_acls", planfile.Bool(true)),
						assert.ValueAt("block_public_policy", snap, "storage.bucket.public_access_block.block_public_policy", planfile.Bool(true)),
					}
				},
			},
		},
	}
}
