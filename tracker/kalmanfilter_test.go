package tracker

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// floatsEqual compares slices of float32
func floatsEqual(a, b []float32, epsilon float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if diff := a[i] - b[i]; diff > epsilon || diff < -epsilon {
			return false
		}
	}
	return true
}

// matricesEqual compares matrices
func matricesEqual(a, b mat.Matrix, epsilon float64) bool {
	r1, c1 := a.Dims()
	r2, c2 := b.Dims()

	if r1 != r2 || c1 != c2 {
		return false
	}

	for i := 0; i < r1; i++ {
		for j := 0; j < c1; j++ {
			if diff := a.At(i, j) - b.At(i, j); diff > epsilon || diff < -epsilon {
				return false
			}
		}
	}

	return true
}

// TestKalmanFilter checks the initiate, predict and update steps against
// values worked out by hand for the fixed noise model
func TestKalmanFilter(t *testing.T) {

	kf := NewKalmanFilter(4.0, 4.0)

	mean := make(StateMean, 8)
	covariance := &StateCov{mat.NewDense(8, 8, nil)}

	measurement := Measurement{100.0, 200.0, 50.0, 40.0}

	kf.Initiate(mean, covariance, measurement)

	expectedMeanInit := StateMean{100.0, 200.0, 50.0, 40.0, 0.0, 0.0, 0.0, 0.0}

	expectedCovarianceInit := mat.NewDense(8, 8, []float64{
		4, 0, 0, 0, 0, 0, 0, 0,
		0, 4, 0, 0, 0, 0, 0, 0,
		0, 0, 4, 0, 0, 0, 0, 0,
		0, 0, 0, 4, 0, 0, 0, 0,
		0, 0, 0, 0, 4, 0, 0, 0,
		0, 0, 0, 0, 0, 4, 0, 0,
		0, 0, 0, 0, 0, 0, 4, 0,
		0, 0, 0, 0, 0, 0, 0, 4,
	})

	if !floatsEqual(mean, expectedMeanInit, 1e-4) {
		t.Errorf("expected mean %v, got %v", expectedMeanInit, mean)
	}

	if !matricesEqual(covariance, expectedCovarianceInit, 1e-4) {
		t.Errorf("expected covariance %v, got %v",
			mat.Formatted(expectedCovarianceInit, mat.Prefix(""), mat.Excerpt(0)),
			mat.Formatted(covariance, mat.Prefix(""), mat.Excerpt(0)),
		)
	}

	// predict with zero velocity, position must be unchanged while the
	// covariance grows
	kf.Predict(mean, covariance)

	expectedMeanPredict := StateMean{100.0, 200.0, 50.0, 40.0, 0.0, 0.0, 0.0, 0.0}
	expectedCovariancePredict := mat.NewDense(8, 8, []float64{
		12, 0, 0, 0, 4, 0, 0, 0,
		0, 12, 0, 0, 0, 4, 0, 0,
		0, 0, 12, 0, 0, 0, 4, 0,
		0, 0, 0, 12, 0, 0, 0, 4,
		4, 0, 0, 0, 8, 0, 0, 0,
		0, 4, 0, 0, 0, 8, 0, 0,
		0, 0, 4, 0, 0, 0, 8, 0,
		0, 0, 0, 4, 0, 0, 0, 8,
	})

	if !floatsEqual(mean, expectedMeanPredict, 1e-4) {
		t.Errorf("expected mean %v, got %v", expectedMeanPredict, mean)
	}

	if !matricesEqual(covariance, expectedCovariancePredict, 1e-4) {
		t.Errorf("expected covariance %v, got %v",
			mat.Formatted(expectedCovariancePredict, mat.Prefix(""), mat.Excerpt(0)),
			mat.Formatted(covariance, mat.Prefix(""), mat.Excerpt(0)),
		)
	}

	// fuse a new measurement.  With the covariance above the Kalman gain
	// is 0.75 on position and 0.25 on velocity
	measurement = Measurement{104.0, 204.0, 52.0, 44.0}

	err := kf.Update(mean, covariance, measurement)

	if err != nil {
		t.Errorf("failed to update: %v", err)
	}

	expectedMeanUpdate := StateMean{103.0, 203.0, 51.5, 43.0, 1.0, 1.0, 0.5, 1.0}
	expectedCovarianceUpdate := mat.NewDense(8, 8, []float64{
		3, 0, 0, 0, 1, 0, 0, 0,
		0, 3, 0, 0, 0, 1, 0, 0,
		0, 0, 3, 0, 0, 0, 1, 0,
		0, 0, 0, 3, 0, 0, 0, 1,
		1, 0, 0, 0, 7, 0, 0, 0,
		0, 1, 0, 0, 0, 7, 0, 0,
		0, 0, 1, 0, 0, 0, 7, 0,
		0, 0, 0, 1, 0, 0, 0, 7,
	})

	if !floatsEqual(mean, expectedMeanUpdate, 1e-4) {
		t.Errorf("expected mean %v, got %v", expectedMeanUpdate, mean)
	}

	if !matricesEqual(covariance, expectedCovarianceUpdate, 1e-4) {
		t.Errorf("expected covariance %v, got %v",
			mat.Formatted(expectedCovarianceUpdate, mat.Prefix(""), mat.Excerpt(0)),
			mat.Formatted(covariance, mat.Prefix(""), mat.Excerpt(0)),
		)
	}
}

// TestKalmanFilterVelocity checks that repeated corrections from a particle
// moving at constant speed build up a matching velocity estimate
func TestKalmanFilterVelocity(t *testing.T) {

	kf := NewKalmanFilter(4.0, 4.0)

	mean := make(StateMean, 8)
	covariance := &StateCov{mat.NewDense(8, 8, nil)}

	kf.Initiate(mean, covariance, Measurement{0.0, 0.0, 10.0, 10.0})

	// particle moving +5 px/frame in x
	for i := 1; i <= 10; i++ {
		kf.Predict(mean, covariance)

		err := kf.Update(mean, covariance, Measurement{float32(i) * 5.0, 0.0, 10.0, 10.0})

		if err != nil {
			t.Fatalf("failed to update at step %d: %v", i, err)
		}
	}

	if mean[4] < 3.0 || mean[4] > 7.0 {
		t.Errorf("expected x velocity near 5, got %f", mean[4])
	}

	if mean[5] > 0.5 || mean[5] < -0.5 {
		t.Errorf("expected y velocity near 0, got %f", mean[5])
	}
}
