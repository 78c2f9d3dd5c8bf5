package eval

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Sentinel errors for metric inputs.
var (
	// ErrLengthMismatch indicates len(labels) != len(scores).
	ErrLengthMismatch = errors.New("eval: labels and scores must have equal length")

	// ErrEmpty indicates there are no observations to grade.
	ErrEmpty = errors.New("eval: no observations")

	// ErrLabelDomain indicates a label other than 0 or 1.
	ErrLabelDomain = errors.New("eval: labels must be 0 or 1")

	// ErrSingleClass indicates all labels are equal, leaving the metrics undefined.
	ErrSingleClass = errors.New("eval: need both classes to grade a ranking")
)

// byScore sorts scores ascending, carrying the class flags along.
type byScore struct {
	scores  []float64
	classes []bool
}

func (b byScore) Len() int           { return len(b.scores) }
func (b byScore) Less(i, j int) bool { return b.scores[i] < b.scores[j] }
func (b byScore) Swap(i, j int) {
	b.scores[i], b.scores[j] = b.scores[j], b.scores[i]
	b.classes[i], b.classes[j] = b.classes[j], b.classes[i]
}

// validate checks the shared input contract and returns the class flags
// (true = anomaly) together with the positive count.
func validate(labels []int, scores []float64) ([]bool, int, error) {
	if len(labels) != len(scores) {
		return nil, 0, ErrLengthMismatch
	}
	if len(labels) == 0 {
		return nil, 0, ErrEmpty
	}

	classes := make([]bool, len(labels))
	var positives int
	for i, y := range labels {
		switch y {
		case 0:
		case 1:
			classes[i] = true
			positives++
		default:
			return nil, 0, ErrLabelDomain
		}
	}
	if positives == 0 || positives == len(labels) {
		return nil, 0, ErrSingleClass
	}

	return classes, positives, nil
}

// RocAuc returns the area under the ROC curve of scores against labels:
// 1.0 for a ranking that puts every anomaly above every inlier, 0.5 for a
// random ranking.
func RocAuc(labels []int, scores []float64) (float64, error) {
	classes, _, err := validate(labels, scores)
	if err != nil {
		return 0, err
	}

	// gonum's ROC wants the scores ascending with classes aligned.
	ys := append([]float64(nil), scores...)
	sort.Stable(byScore{scores: ys, classes: classes})
	tpr, fpr, _ := stat.ROC(nil, ys, classes, nil)

	return integrate.Trapezoidal(fpr, tpr), nil
}

// AveragePrecision returns the area under the precision/recall sweep:
// AP = Σ_k (R_k − R_{k−1})·P_k over distinct score thresholds taken in
// descending order. Tied scores enter as one group, so permuting equal
// scores cannot change the result.
func AveragePrecision(labels []int, scores []float64) (float64, error) {
	classes, positives, err := validate(labels, scores)
	if err != nil {
		return 0, err
	}

	ys := append([]float64(nil), scores...)
	sort.Stable(byScore{scores: ys, classes: classes})

	var (
		ap         float64
		tp, fp     int
		prevRecall float64
	)
	// Sweep descending; commit a (precision, recall) step per distinct score.
	for i := len(ys) - 1; i >= 0; i-- {
		if classes[i] {
			tp++
		} else {
			fp++
		}
		if i > 0 && ys[i-1] == ys[i] {
			continue // same threshold group
		}
		recall := float64(tp) / float64(positives)
		precision := float64(tp) / float64(tp+fp)
		ap += (recall - prevRecall) * precision
		prevRecall = recall
	}

	return ap, nil
}
