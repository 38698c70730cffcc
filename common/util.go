package common

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	// DefaultRelTol and DefaultAbsTol follow numpy.isclose.
	DefaultRelTol = 1e-5
	DefaultAbsTol = 1e-8
)

// IsClose reports whether a and b are equal within the default tolerances.
// It is asymmetric in the same way as numpy.isclose: b is the reference.
func IsClose(a, b float64) bool {
	return IsCloseTol(a, b, DefaultRelTol, DefaultAbsTol)
}

func IsCloseTol(a, b, relTol, absTol float64) bool {
	if a == b {
		return true
	}
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	return math.Abs(a-b) <= absTol+relTol*math.Abs(b)
}

// Linspace returns steps evenly spaced values over [start, stop].
func Linspace(start, stop float64, steps int) []float64 {
	if steps <= 0 {
		return []float64{}
	}
	if steps == 1 {
		return []float64{start}
	}
	out := make([]float64, steps)
	delta := (stop - start) / float64(steps-1)
	for i := range out {
		out[i] = start + float64(i)*delta
	}
	out[steps-1] = stop
	return out
}

func IsDirWritable(dirPath string) error {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", dirPath)
	}
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dirPath)
	}

	tempFile, err := os.CreateTemp(dirPath, "test-write-*.tmp")
	if err != nil {
		return fmt.Errorf("write permission denied for directory: %s", dirPath)
	}
	fileName := tempFile.Name()
	tempFile.Close()

	if err := os.Remove(fileName); err != nil {
		return fmt.Errorf("failed to remove temporary file: %s", err)
	}

	return nil
}

func ReadSettingsFile(settingsPath string) (string, error) {
	bytes, err := os.ReadFile(settingsPath)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to read settings file/path:%s/reason:%s",
			settingsPath, err))
		if absolutePath, err := filepath.Abs(settingsPath); err != nil {
			zap.L().Error(fmt.Sprintf("failed to get absolute path of %s/reason:%s",
				settingsPath, err))
		} else {
			zap.L().Debug(fmt.Sprintf("absolute path:%s", absolutePath))
		}
		return "", err
	}
	return string(bytes), nil
}
