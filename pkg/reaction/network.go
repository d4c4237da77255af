package reaction

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/felixlaga/atmodeller/pkg/chem"
)

// ErrSingularStoichiometry is returned when the elemental composition matrix
// is rank deficient: some element row is a linear combination of the others,
// so the reaction basis would be larger than species - elements and the
// mass-balance system underdetermined.
var ErrSingularStoichiometry = errors.New("reaction: singular elemental composition matrix")

// Network holds the composition and stoichiometric matrices for a species
// collection. It is built once per collection and reused across solves.
type Network struct {
	elements    []string
	composition [][]int // elements x species
	stoich      [][]int // reactions x species
}

// NewNetwork builds the reaction network for a collection.
func NewNetwork(c *chem.Collection) (*Network, error) {
	n := c.Len()
	elements := c.Elements()
	e := len(elements)

	comp := make([][]int, e)
	for i, symbol := range elements {
		comp[i] = make([]int, n)
		for j := 0; j < n; j++ {
			comp[i][j] = c.At(j).ElementCount(symbol)
		}
	}

	stoich, rank, err := nullSpaceBasis(comp, e, n)
	if err != nil {
		return nil, err
	}
	if rank < e {
		return nil, fmt.Errorf("%w: rank %d < %d elements", ErrSingularStoichiometry, rank, e)
	}

	return &Network{
		elements:    elements,
		composition: comp,
		stoich:      stoich,
	}, nil
}

// Elements returns the element row ordering of the composition matrix.
func (nw *Network) Elements() []string {
	out := make([]string, len(nw.elements))
	copy(out, nw.elements)
	return out
}

// NumReactions returns the number of independent reactions.
func (nw *Network) NumReactions() int { return len(nw.stoich) }

// Stoichiometry returns the coefficient of species j in reaction i.
// Positive coefficients are products under the package's sign convention.
func (nw *Network) Stoichiometry(i, j int) int { return nw.stoich[i][j] }

// Composition returns the count of element row i in species column j.
func (nw *Network) Composition(i, j int) int { return nw.composition[i][j] }

// String renders the reactions for logging and debugging.
func (nw *Network) String(names []string) string {
	var b strings.Builder
	for i, row := range nw.stoich {
		if i > 0 {
			b.WriteByte('\n')
		}
		var lhs, rhs []string
		for j, nu := range row {
			switch {
			case nu < 0:
				lhs = append(lhs, term(-nu, names[j]))
			case nu > 0:
				rhs = append(rhs, term(nu, names[j]))
			}
		}
		b.WriteString(strings.Join(lhs, " + "))
		b.WriteString(" = ")
		b.WriteString(strings.Join(rhs, " + "))
	}
	return b.String()
}

func term(nu int, name string) string {
	if nu == 1 {
		return name
	}
	return fmt.Sprintf("%d %s", nu, name)
}

// nullSpaceBasis computes an integer basis of the null space of an e x n
// integer matrix via rational Gauss-Jordan elimination. Pivoting always
// selects the topmost unused row, so the output depends only on the input
// ordering. Returns the basis rows and the matrix rank.
func nullSpaceBasis(m [][]int, e, n int) ([][]int, int, error) {
	// Promote to rationals.
	a := make([][]*big.Rat, e)
	for i := range a {
		a[i] = make([]*big.Rat, n)
		for j := range a[i] {
			a[i][j] = new(big.Rat).SetInt64(int64(m[i][j]))
		}
	}

	pivotCol := make([]int, 0, e) // pivot column per reduced row
	row := 0
	for col := 0; col < n && row < e; col++ {
		// Topmost nonzero entry at or below `row`.
		sel := -1
		for r := row; r < e; r++ {
			if a[r][col].Sign() != 0 {
				sel = r
				break
			}
		}
		if sel < 0 {
			continue
		}
		a[row], a[sel] = a[sel], a[row]

		inv := new(big.Rat).Inv(a[row][col])
		for j := col; j < n; j++ {
			a[row][j].Mul(a[row][j], inv)
		}
		for r := 0; r < e; r++ {
			if r == row || a[r][col].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Set(a[r][col])
			for j := col; j < n; j++ {
				prod := new(big.Rat).Mul(factor, a[row][j])
				a[r][j].Sub(a[r][j], prod)
			}
		}
		pivotCol = append(pivotCol, col)
		row++
	}
	rank := row

	isPivot := make([]bool, n)
	for _, c := range pivotCol {
		isPivot[c] = true
	}

	var basis [][]int
	for free := 0; free < n; free++ {
		if isPivot[free] {
			continue
		}
		v := make([]*big.Rat, n)
		for j := range v {
			v[j] = new(big.Rat)
		}
		v[free].SetInt64(1)
		for r, pc := range pivotCol {
			v[pc].Neg(a[r][free])
		}
		iv, err := toSmallestIntegers(v)
		if err != nil {
			return nil, 0, err
		}
		basis = append(basis, iv)
	}
	return basis, rank, nil
}

// toSmallestIntegers scales a rational vector to coprime integers with the
// first nonzero entry positive.
func toSmallestIntegers(v []*big.Rat) ([]int, error) {
	lcm := big.NewInt(1)
	for _, r := range v {
		if r.Sign() != 0 {
			lcm = lcmInt(lcm, r.Denom())
		}
	}
	ints := make([]*big.Int, len(v))
	var gcd *big.Int
	for i, r := range v {
		scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt(lcm))
		ints[i] = new(big.Int).Set(scaled.Num())
		if ints[i].Sign() != 0 {
			abs := new(big.Int).Abs(ints[i])
			if gcd == nil {
				gcd = abs
			} else {
				gcd.GCD(nil, nil, gcd, abs)
			}
		}
	}
	if gcd == nil {
		return nil, errors.New("reaction: zero null-space vector")
	}
	sign := int64(1)
	for _, x := range ints {
		if x.Sign() != 0 {
			if x.Sign() < 0 {
				sign = -1
			}
			break
		}
	}
	out := make([]int, len(v))
	for i, x := range ints {
		q := new(big.Int).Div(new(big.Int).Mul(x, big.NewInt(sign)), gcd)
		if !q.IsInt64() {
			return nil, fmt.Errorf("reaction: coefficient overflow in null-space vector")
		}
		out[i] = int(q.Int64())
	}
	return out, nil
}

func lcmInt(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	return new(big.Int).Div(new(big.Int).Mul(a, b), g)
}
