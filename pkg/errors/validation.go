package errors

import (
	"math"
	"path/filepath"
	"strings"
)

// MaxAlternatives bounds the number of alternatives accepted from untrusted
// input. Dominance matrices are dense, so memory grows with the square.
const MaxAlternatives = 1000

// MaxCriteria bounds the number of criteria accepted from untrusted input.
const MaxCriteria = 1000

// ValidateAlternatives checks an alternatives count from untrusted input.
// Zero is valid and yields empty matrices and the sentinel answer.
func ValidateAlternatives(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "alternatives count cannot be negative (got %d)", n)
	}
	if n > MaxAlternatives {
		return New(ErrCodeInvalidInput, "too many alternatives (max %d, got %d)", MaxAlternatives, n)
	}
	return nil
}

// ValidateCriteria checks a criteria count from untrusted input.
func ValidateCriteria(k int) error {
	if k < 0 {
		return New(ErrCodeInvalidInput, "criteria count cannot be negative (got %d)", k)
	}
	if k > MaxCriteria {
		return New(ErrCodeInvalidInput, "too many criteria (max %d, got %d)", MaxCriteria, k)
	}
	return nil
}

// ValidateAlternative checks that id is a 1-based alternative identifier
// within [1, n].
func ValidateAlternative(id, n int) error {
	if id < 1 || id > n {
		return New(ErrCodeInvalidRelation, "alternative %d out of range [1, %d]", id, n)
	}
	return nil
}

// ValidateCriterion checks that id is a positive criterion identifier.
func ValidateCriterion(id int) error {
	if id < 1 {
		return New(ErrCodeInvalidInput, "criterion id must be positive (got %d)", id)
	}
	return nil
}

// ValidateWeight rejects weights that cannot take part in a weighted sum:
// negative, NaN or infinite values.
func ValidateWeight(criterion int, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidWeights, "weight for criterion %d is not a finite number", criterion)
	}
	if w < 0 {
		return New(ErrCodeInvalidWeights, "weight for criterion %d is negative (%g)", criterion, w)
	}
	return nil
}

// ValidateNormalized checks that weights sum to 1 within tol.
func ValidateNormalized(weights map[int]float64, tol float64) error {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1) > tol {
		return New(ErrCodeInvalidWeights, "weights sum to %.4f, must sum to 1 (tolerance %g)", sum, tol)
	}
	return nil
}

// ValidatePath validates an output path passed on the command line.
// It rejects empty paths, null bytes and control characters.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}
	if strings.ContainsAny(path, "\x00\r\n") {
		return New(ErrCodeInvalidInput, "path contains invalid characters")
	}
	if filepath.Clean(path) == "." {
		return New(ErrCodeInvalidInput, "path must name a file")
	}
	return nil
}
