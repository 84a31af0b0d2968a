// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package diag

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// maxIter is the maximum number of QR iterations
// used per eigenvalue.
const maxIter = 30

// machine epsilon
const eps = 0x1p-52

var errNoConvergence = errors.New("eigenvalue solver did not converge")

// eigenvalues returns the eigenvalues of a square complex matrix.
//
// If the matrix is real,
// the values are calculated with the gonum eigen decomposition,
// otherwise the matrix is reduced to the upper Hessenberg form
// and the eigenvalues are calculated with a shifted QR algorithm.
// The eigenvalues are returned in the order
// in which the solver found them.
func eigenvalues(a *mat.CDense) ([]complex128, error) {
	n, c := a.Dims()
	if n != c {
		panic("diag: non square matrix")
	}

	h := make([][]complex128, n)
	isReal := true
	for i := range h {
		h[i] = make([]complex128, n)
		for j := range h[i] {
			v := a.At(i, j)
			if cmplx.IsNaN(v) || cmplx.IsInf(v) {
				return nil, errors.New("non finite value in matrix")
			}
			if imag(v) != 0 {
				isReal = false
			}
			h[i][j] = v
		}
	}

	if isReal {
		return realEigen(h)
	}

	hessenberg(h)
	return hessenbergQR(h)
}

func realEigen(h [][]complex128) ([]complex128, error) {
	n := len(h)
	d := mat.NewDense(n, n, nil)
	for i := range h {
		for j, v := range h[i] {
			d.Set(i, j, real(v))
		}
	}

	var e mat.Eigen
	if ok := e.Factorize(d, mat.EigenNone); !ok {
		return nil, errNoConvergence
	}
	return e.Values(nil), nil
}

// hessenberg reduces a complex matrix to the upper Hessenberg form
// using Householder reflections.
// The matrix is modified in place.
func hessenberg(a [][]complex128) {
	n := len(a)
	v := make([]complex128, n)
	for k := 0; k < n-2; k++ {
		var alpha float64
		for i := k + 1; i < n; i++ {
			alpha += sqAbs(a[i][k])
		}
		alpha = math.Sqrt(alpha)
		if alpha == 0 {
			continue
		}

		phase := complex(1, 0)
		if x := cmplx.Abs(a[k+1][k]); x != 0 {
			phase = a[k+1][k] / complex(x, 0)
		}
		for i := k + 1; i < n; i++ {
			v[i] = a[i][k]
		}
		v[k+1] += phase * complex(alpha, 0)

		var vv float64
		for i := k + 1; i < n; i++ {
			vv += sqAbs(v[i])
		}
		if vv == 0 {
			continue
		}
		f := complex(2/vv, 0)

		// H·A
		for j := 0; j < n; j++ {
			var s complex128
			for i := k + 1; i < n; i++ {
				s += cmplx.Conj(v[i]) * a[i][j]
			}
			s *= f
			for i := k + 1; i < n; i++ {
				a[i][j] -= v[i] * s
			}
		}

		// A·H
		for i := 0; i < n; i++ {
			var s complex128
			for j := k + 1; j < n; j++ {
				s += a[i][j] * v[j]
			}
			s *= f
			for j := k + 1; j < n; j++ {
				a[i][j] -= s * cmplx.Conj(v[j])
			}
		}

		for i := k + 2; i < n; i++ {
			a[i][k] = 0
		}
	}
}

// hessenbergQR returns the eigenvalues of an upper Hessenberg matrix
// using single shift QR iterations
// with Wilkinson shifts and deflation.
// The matrix is destroyed.
func hessenbergQR(h [][]complex128) ([]complex128, error) {
	n := len(h)
	w := make([]complex128, n)

	var norm float64
	for i := range h {
		for _, v := range h[i] {
			norm += abs1(v)
		}
	}

	cs := make([]float64, n)
	sn := make([]complex128, n)

	hi := n - 1
	iter := 0
	for hi >= 0 {
		// look for a negligible sub-diagonal element
		l := hi
		for ; l > 0; l-- {
			s := abs1(h[l-1][l-1]) + abs1(h[l][l])
			if s == 0 {
				s = norm
			}
			if abs1(h[l][l-1]) <= eps*s {
				h[l][l-1] = 0
				break
			}
		}

		switch hi - l {
		case 0:
			w[hi] = h[hi][hi]
			hi--
			iter = 0
			continue
		case 1:
			w[hi-1], w[hi] = eigen2x2(h[hi-1][hi-1], h[hi-1][hi], h[hi][hi-1], h[hi][hi])
			hi -= 2
			iter = 0
			continue
		}

		if iter >= maxIter*n {
			return nil, errNoConvergence
		}
		iter++

		var mu complex128
		if iter%10 == 0 {
			// exceptional shift
			mu = h[hi][hi] + complex(math.Abs(real(h[hi][hi-1]))+math.Abs(real(h[hi-1][hi-2])), 0)
		} else {
			mu1, mu2 := eigen2x2(h[hi-1][hi-1], h[hi-1][hi], h[hi][hi-1], h[hi][hi])
			mu = mu1
			if cmplx.Abs(mu2-h[hi][hi]) < cmplx.Abs(mu1-h[hi][hi]) {
				mu = mu2
			}
		}

		for i := l; i <= hi; i++ {
			h[i][i] -= mu
		}

		// R = Q^H (H - mu I)
		for k := l; k < hi; k++ {
			c, s := givens(h[k][k], h[k+1][k])
			cs[k], sn[k] = c, s
			for j := k; j <= hi; j++ {
				t1, t2 := h[k][j], h[k+1][j]
				h[k][j] = complex(c, 0)*t1 + s*t2
				h[k+1][j] = -cmplx.Conj(s)*t1 + complex(c, 0)*t2
			}
		}

		// H = R Q + mu I
		for k := l; k < hi; k++ {
			c, s := cs[k], sn[k]
			for i := l; i <= k+1; i++ {
				t1, t2 := h[i][k], h[i][k+1]
				h[i][k] = t1*complex(c, 0) + t2*cmplx.Conj(s)
				h[i][k+1] = -t1*s + t2*complex(c, 0)
			}
		}

		for i := l; i <= hi; i++ {
			h[i][i] += mu
		}
	}
	return w, nil
}

// givens returns the parameters of a complex Givens rotation
// G = [c s; -conj(s) c]
// such that the second element of G·[x; y] is zero.
func givens(x, y complex128) (float64, complex128) {
	ax := cmplx.Abs(x)
	ay := cmplx.Abs(y)
	if ay == 0 {
		return 1, 0
	}
	if ax == 0 {
		return 0, cmplx.Conj(y) / complex(ay, 0)
	}
	r := math.Hypot(ax, ay)
	c := ax / r
	s := (x / complex(ax, 0)) * cmplx.Conj(y) / complex(r, 0)
	return c, s
}

// eigen2x2 returns the eigenvalues
// of the matrix [a b; c d].
func eigen2x2(a, b, c, d complex128) (complex128, complex128) {
	m := (a + d) / 2
	disc := cmplx.Sqrt((a-d)*(a-d)/4 + b*c)
	return m + disc, m - disc
}

func abs1(v complex128) float64 {
	return math.Abs(real(v)) + math.Abs(imag(v))
}

func sqAbs(v complex128) float64 {
	return real(v)*real(v) + imag(v)*imag(v)
}
