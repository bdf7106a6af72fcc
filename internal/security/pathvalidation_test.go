package security

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePathWithinDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("direct child", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ValidatePathWithinDirectory(filepath.Join(dir, "gap_scan.csv"), dir))
	})

	t.Run("nested child", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ValidatePathWithinDirectory(filepath.Join(dir, "runs", "gap_scan.csv"), dir))
	})

	t.Run("traversal escapes", func(t *testing.T) {
		t.Parallel()
		err := ValidatePathWithinDirectory(filepath.Join(dir, "..", "other", "x.csv"), dir)
		assert.ErrorContains(t, err, "escapes directory")
	})

	t.Run("dotdot inside stays put", func(t *testing.T) {
		t.Parallel()
		// runs/../gap_scan.csv cleans to a path still under dir.
		assert.NoError(t, ValidatePathWithinDirectory(filepath.Join(dir, "runs", "..", "gap_scan.csv"), dir))
	})

	t.Run("parent itself", func(t *testing.T) {
		t.Parallel()
		err := ValidatePathWithinDirectory(filepath.Dir(dir), dir)
		assert.ErrorContains(t, err, "escapes directory")
	})
}
