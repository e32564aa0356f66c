package common

import "fmt"

const OrphanBucketsKey = "media:orphans"

// OrphanKey is the redis set holding the orphaned object keys of a bucket.
func OrphanKey(bucket string) string {
	return fmt.Sprintf("media:orphans:%s", bucket)
}
