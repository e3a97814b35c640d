package apimodel

// Flatten returns root and every item below it in pre-order: an item
// precedes its members, and members keep their declared order.
//
// The walk uses an explicit stack so deeply nested models cannot exhaust
// the goroutine stack.
func Flatten(root *Item) []*Item {
	if root == nil {
		return nil
	}
	var out []*Item
	stack := []*Item{root}
	for len(stack) > 0 {
		n := len(stack) - 1
		item := stack[n]
		stack = stack[:n]
		out = append(out, item)
		for i := len(item.Members) - 1; i >= 0; i-- {
			stack = append(stack, item.Members[i])
		}
	}
	return out
}

// Descendants is Flatten without root itself.
func Descendants(root *Item) []*Item {
	all := Flatten(root)
	if len(all) == 0 {
		return nil
	}
	return all[1:]
}
