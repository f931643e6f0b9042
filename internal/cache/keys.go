package cache

import "fmt"

// KeyTestCatalog holds the cached list of test summaries.
const KeyTestCatalog = "tests:catalog"

// KeyTestDetail returns the cache key for one test's full detail payload.
func KeyTestDetail(testID uint) string {
	return fmt.Sprintf("tests:detail:%d", testID)
}
