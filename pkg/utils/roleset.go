package utils

// HasAnyRole 判断 owned 与 allowed 两个角色集合是否存在交集。
// 任一集合为空时返回 false。
func HasAnyRole(owned, allowed []string) bool {
	if len(owned) == 0 || len(allowed) == 0 {
		return false
	}
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = struct{}{}
	}
	for _, o := range owned {
		if _, ok := allowedSet[o]; ok {
			return true
		}
	}
	return false
}

// CompareStringSlices 比较两个字符串切片是否在长度和内容上都完全相同。
// 如果两个切片都为 nil，则认为它们是相同的。
func CompareStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
