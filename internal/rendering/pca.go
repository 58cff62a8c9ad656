package rendering

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ProjectPCA standardizes each feature column and projects the rows onto
// the first two principal components.
func ProjectPCA(features [][]float64) ([][2]float64, error) {
	n := len(features)
	if n < 2 {
		return nil, fmt.Errorf("%w: PCA needs at least 2 rows, got %d", ErrInsufficientData, n)
	}
	d := len(features[0])
	if d < 2 {
		return nil, fmt.Errorf("%w: PCA needs at least 2 feature columns, got %d", ErrInsufficientData, d)
	}

	x := mat.NewDense(n, d, nil)
	for i, row := range features {
		if len(row) != d {
			return nil, fmt.Errorf("feature row %d has %d columns, want %d", i, len(row), d)
		}
		x.SetRow(i, row)
	}
	standardize(x)

	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return nil, fmt.Errorf("principal component analysis failed")
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	var proj mat.Dense
	proj.Mul(x, vecs.Slice(0, d, 0, 2))

	points := make([][2]float64, n)
	for i := range points {
		points[i] = [2]float64{proj.At(i, 0), proj.At(i, 1)}
	}
	return points, nil
}

// standardize scales each column of x in place to zero mean and unit
// population variance. Constant columns are only centered.
func standardize(x *mat.Dense) {
	n, d := x.Dims()
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, x)
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		for i := 0; i < n; i++ {
			x.Set(i, j, (col[i]-mean)/std)
		}
	}
}
