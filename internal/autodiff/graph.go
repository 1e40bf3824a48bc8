package autodiff

// Walk calls fn once for every distinct tensor reachable from root, in
// depth-first pre-order with operands visited left to right. Returning false
// from fn skips the operands of that tensor.
func Walk(root *Tensor, fn func(*Tensor) bool) {
	seen := make(map[*Tensor]struct{})
	stack := []*Tensor{root}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}

		if !fn(t) {
			continue
		}
		operands := t.Operands()
		for i := len(operands) - 1; i >= 0; i-- {
			stack = append(stack, operands[i])
		}
	}
}

// Leaves returns the distinct leaves reachable from root in Walk order.
func Leaves(root *Tensor) []*Tensor {
	var leaves []*Tensor
	Walk(root, func(t *Tensor) bool {
		if t.IsLeaf() {
			leaves = append(leaves, t)
		}
		return true
	})
	return leaves
}

// CountNodes returns the number of distinct tensors reachable from root.
func CountNodes(root *Tensor) int {
	n := 0
	Walk(root, func(*Tensor) bool {
		n++
		return true
	})
	return n
}

// ZeroGrads resets the gradient of every tensor reachable from root.
func ZeroGrads(root *Tensor) {
	Walk(root, func(t *Tensor) bool {
		t.ZeroGrad()
		return true
	})
}
