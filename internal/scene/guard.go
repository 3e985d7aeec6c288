package scene

// InsideInstance reports whether n is nested in an instance. It walks up
// the parent chain and stops at the first page (false) or instance (true).
// A node detached from any page is not inside an instance.
func InsideInstance(n Node) bool {
	seen := make(map[string]struct{})
	for p := parentOf(n); p != nil; p = parentOf(p) {
		switch p.Type() {
		case TypePage, TypeDocument:
			return false
		case TypeInstance:
			return true
		}
		if _, ok := seen[p.ID()]; ok {
			return false
		}
		seen[p.ID()] = struct{}{}
	}
	return false
}

// AnyInsideInstance returns the first node of nodes nested in an instance.
func AnyInsideInstance[N Node](nodes []N) (Node, bool) {
	for _, n := range nodes {
		if InsideInstance(n) {
			return n, true
		}
	}
	return nil, false
}

func parentOf(n Node) Node {
	if n == nil {
		return nil
	}
	return n.Parent()
}
