package tracker

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Measurement represents a 1x4 matrix holding a center form (center x,
// center y, width, height) observation
type Measurement []float32

// StateMean represents a 1x8 matrix holding the state (center x, center y,
// width, height) and the velocity of each component
type StateMean []float32

// StateCov represents an 8x8 covariance matrix
type StateCov struct {
	*mat.Dense
}

// KalmanFilter implements a constant velocity motion model over the full
// center form bounding box.  Process and measurement noise are fixed
// isotropic covariances, motion model mismatch is absorbed by these
// constants rather than adaptive tuning
type KalmanFilter struct {
	processNoise     float32
	measurementNoise float32
	motionMat        *mat.Dense
	updateMat        *mat.Dense
}

// NewKalmanFilter initializes and returns a new KalmanFilter with the given
// process and measurement noise variances
func NewKalmanFilter(processNoise, measurementNoise float32) *KalmanFilter {

	ndim := 4
	dt := float32(1.0)

	// transition matrix of the constant velocity model, identity plus a
	// velocity term for each of the four geometric components
	motionMat := mat.NewDense(8, 8, nil)

	for i := 0; i < 8; i++ {
		motionMat.Set(i, i, float64(1.0))
	}

	for i := 0; i < ndim; i++ {
		motionMat.Set(i, ndim+i, float64(dt))
	}

	// measurement matrix, observe the four position/size components only
	updateMat := mat.NewDense(4, 8, nil)

	for i := 0; i < 4; i++ {
		updateMat.Set(i, i, float64(1.0))
	}

	return &KalmanFilter{
		processNoise:     processNoise,
		measurementNoise: measurementNoise,
		motionMat:        motionMat,
		updateMat:        updateMat,
	}
}

// Initiate initializes the state mean and covariance from the first
// measurement.  Velocity components start at zero
func (kf *KalmanFilter) Initiate(mean StateMean, covariance *StateCov,
	measurement Measurement) {

	// copy position and size from the measurement into the mean
	copy(mean[:4], measurement[:4])

	// zero the velocity components
	for i := 4; i < 8; i++ {
		mean[i] = 0.0
	}

	// seed the covariance with the process noise variance
	for i := 0; i < 8; i++ {
		covariance.Set(i, i, float64(kf.processNoise))
	}
}

// Predict advances the state mean and covariance one frame using the motion
// model alone.  Uncertainty grows by the process noise each call
func (kf *KalmanFilter) Predict(mean StateMean, covariance *StateCov) {

	// convert the mean state vector to a matrix for multiplication
	meanVec := mat.NewVecDense(8, nil)

	for i := 0; i < 8; i++ {
		meanVec.SetVec(i, float64(mean[i]))
	}

	meanMat := mat.NewDense(8, 1, meanVec.RawVector().Data)

	// advance the state mean by the motion model
	meanMat.Mul(kf.motionMat, meanMat)

	for i := 0; i < 8; i++ {
		mean[i] = float32(meanMat.At(i, 0))
	}

	// process noise covariance added each prediction step
	motionCov := mat.NewDense(8, 8, nil)

	for i := 0; i < 8; i++ {
		motionCov.Set(i, i, float64(kf.processNoise))
	}

	// advance the state covariance by the motion model
	cov := covariance.Dense
	cov.Mul(kf.motionMat, cov)
	cov.Mul(cov, kf.motionMat.T())
	cov.Add(cov, motionCov)
}

// Update fuses a new measurement into the predicted state mean and
// covariance via the Kalman gain
func (kf *KalmanFilter) Update(mean StateMean, covariance *StateCov,
	measurement Measurement) error {

	// project the state mean and covariance to measurement space
	projectedMean, projectedCov := kf.project(mean, covariance)

	// perform Cholesky factorization of the projected covariance matrix
	chol := mat.Cholesky{}

	if ok := chol.Factorize(projectedCov); !ok {
		return errors.New("failed to factorize projected covariance")
	}

	// compute the matrix B for Kalman gain calculation
	B := mat.NewDense(8, 4, nil)
	B.Mul(covariance.Dense, kf.updateMat.T())

	// compute the Kalman gain using the Cholesky factorization
	var kalmanGain mat.Dense
	err := chol.SolveTo(&kalmanGain, B.T())

	if err != nil {
		return fmt.Errorf("failed to compute kalman gain: %w", err)
	}

	// compute the innovation (measurement residual)
	innovation := make([]float64, 4)

	for i := 0; i < 4; i++ {
		innovation[i] = float64(measurement[i] - projectedMean[i])
	}

	// update the state mean with the innovation
	innovationVec := mat.NewVecDense(4, innovation)
	tmp := mat.NewVecDense(8, nil)
	tmp.MulVec(kalmanGain.T(), innovationVec)

	for i := 0; i < 8; i++ {
		mean[i] += float32(tmp.AtVec(i))
	}

	// update the state covariance
	temp := mat.NewDense(8, 4, nil)
	temp.Mul(kalmanGain.T(), projectedCov)

	temp2 := mat.NewDense(8, 8, nil)
	temp2.Mul(temp, &kalmanGain)

	newCov := mat.NewDense(8, 8, nil)
	newCov.Sub(covariance.Dense, temp2)

	covariance.Dense = newCov

	return nil
}

// project projects the state mean and covariance to measurement space and
// adds the measurement noise covariance
func (kf *KalmanFilter) project(mean StateMean,
	covariance *StateCov) (Measurement, *mat.SymDense) {

	// measurement noise covariance
	innovationCov := mat.NewSymDense(4, nil)

	for i := 0; i < 4; i++ {
		innovationCov.SetSym(i, i, float64(kf.measurementNoise))
	}

	// project the state mean to measurement space
	projectedMeanVec := mat.NewVecDense(4, nil)
	projectedMeanVec.MulVec(
		kf.updateMat, mat.NewVecDense(8, func() []float64 {
			data := make([]float64, 8)
			for i, v := range mean {
				data[i] = float64(v)
			}
			return data
		}()),
	)

	// project the state covariance to measurement space
	projectedCov := mat.NewSymDense(4, nil)
	temp := mat.NewDense(4, 8, nil)
	temp.Mul(kf.updateMat, covariance.Dense)
	temp2 := mat.NewDense(4, 4, nil)
	temp2.Mul(temp, kf.updateMat.T())

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			projectedCov.SetSym(i, j, temp2.At(i, j))
		}
	}

	// add the measurement noise to the projected covariance
	projectedCov.AddSym(projectedCov, innovationCov)

	// convert the projected mean to Measurement type
	projectedMean := make(Measurement, 4)

	for i := 0; i < 4; i++ {
		projectedMean[i] = float32(projectedMeanVec.AtVec(i))
	}

	return projectedMean, projectedCov
}
