package RBTree

import "github.com/g-m-twostay/statree/Alloc"

// insertFixup restores the red-black properties after linking in red leaf
// z, via the standard Cormen-style recoloring-and-rotation cases.
func (t *Tree[H, K, V, W, A]) insertFixup(z H) {
	for t.colorOf(t.alloc.Parent(z)) == Alloc.Red {
		p := t.alloc.Parent(z)
		gp := t.alloc.Parent(p)
		if p == t.alloc.Left(gp) {
			u := t.alloc.Right(gp)
			if t.colorOf(u) == Alloc.Red {
				t.alloc.SetColor(p, Alloc.Black)
				t.alloc.SetColor(u, Alloc.Black)
				t.alloc.SetColor(gp, Alloc.Red)
				z = gp
				continue
			}
			if z == t.alloc.Right(p) {
				z = p
				t.rotateLeft(z)
				p = t.alloc.Parent(z)
				gp = t.alloc.Parent(p)
			}
			t.alloc.SetColor(p, Alloc.Black)
			t.alloc.SetColor(gp, Alloc.Red)
			t.rotateRight(gp)
			break
		} else {
			u := t.alloc.Left(gp)
			if t.colorOf(u) == Alloc.Red {
				t.alloc.SetColor(p, Alloc.Black)
				t.alloc.SetColor(u, Alloc.Black)
				t.alloc.SetColor(gp, Alloc.Red)
				z = gp
				continue
			}
			if z == t.alloc.Left(p) {
				z = p
				t.rotateRight(z)
				p = t.alloc.Parent(z)
				gp = t.alloc.Parent(p)
			}
			t.alloc.SetColor(p, Alloc.Black)
			t.alloc.SetColor(gp, Alloc.Red)
			t.rotateLeft(gp)
			break
		}
	}
	t.alloc.SetColor(t.root, Alloc.Black)
}

// deleteFixup restores the red-black properties after x (possibly Nil, but
// carrying the color "doubly black" conceptually) replaces a spliced-out
// black node, via the standard eight-case table. parent is x's parent,
// needed because x itself may be Nil and therefore carries no parent link
// of its own.
func (t *Tree[H, K, V, W, A]) deleteFixup(x, parent H) {
	for x != t.root && t.colorOf(x) == Alloc.Black {
		if parent == t.alloc.Nil() {
			break
		}
		if x == t.alloc.Left(parent) {
			w := t.alloc.Right(parent)
			if t.colorOf(w) == Alloc.Red {
				t.alloc.SetColor(w, Alloc.Black)
				t.alloc.SetColor(parent, Alloc.Red)
				t.rotateLeft(parent)
				w = t.alloc.Right(parent)
			}
			if t.colorOf(t.alloc.Left(w)) == Alloc.Black && t.colorOf(t.alloc.Right(w)) == Alloc.Black {
				t.alloc.SetColor(w, Alloc.Red)
				x = parent
				parent = t.alloc.Parent(x)
				continue
			}
			if t.colorOf(t.alloc.Right(w)) == Alloc.Black {
				t.alloc.SetColor(t.alloc.Left(w), Alloc.Black)
				t.alloc.SetColor(w, Alloc.Red)
				t.rotateRight(w)
				w = t.alloc.Right(parent)
			}
			t.alloc.SetColor(w, t.colorOf(parent))
			t.alloc.SetColor(parent, Alloc.Black)
			t.alloc.SetColor(t.alloc.Right(w), Alloc.Black)
			t.rotateLeft(parent)
			x = t.root
			parent = t.alloc.Nil()
		} else {
			w := t.alloc.Left(parent)
			if t.colorOf(w) == Alloc.Red {
				t.alloc.SetColor(w, Alloc.Black)
				t.alloc.SetColor(parent, Alloc.Red)
				t.rotateRight(parent)
				w = t.alloc.Left(parent)
			}
			if t.colorOf(t.alloc.Right(w)) == Alloc.Black && t.colorOf(t.alloc.Left(w)) == Alloc.Black {
				t.alloc.SetColor(w, Alloc.Red)
				x = parent
				parent = t.alloc.Parent(x)
				continue
			}
			if t.colorOf(t.alloc.Left(w)) == Alloc.Black {
				t.alloc.SetColor(t.alloc.Right(w), Alloc.Black)
				t.alloc.SetColor(w, Alloc.Red)
				t.rotateLeft(w)
				w = t.alloc.Left(parent)
			}
			t.alloc.SetColor(w, t.colorOf(parent))
			t.alloc.SetColor(parent, Alloc.Black)
			t.alloc.SetColor(t.alloc.Left(w), Alloc.Black)
			t.rotateRight(parent)
			x = t.root
			parent = t.alloc.Nil()
		}
	}
	if !t.IsNil(x) {
		t.alloc.SetColor(x, Alloc.Black)
	}
}
