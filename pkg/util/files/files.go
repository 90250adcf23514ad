package files

import "os"

// Exists reports whether path exists, distinguishing "not there" from
// other stat failures (permissions, bad parent directory).
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
