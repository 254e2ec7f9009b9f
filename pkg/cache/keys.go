package cache

// ScanKey generates the cache key for a full-tree metadata scan.
// The key covers every input that changes the scan result: the tree root
// and the classifier policy inputs (domain, herd tag, sentinel addresses).
func ScanKey(root, domain, proxyHerd string, sentinels []string) string {
	return hashKey("scan", root, domain, proxyHerd, sentinels)
}

// IndexKey generates the cache key for the known-atoms index of a tree.
func IndexKey(root string) string {
	return hashKey("index", root)
}
