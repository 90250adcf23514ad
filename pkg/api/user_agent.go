package api

import (
	"fmt"

	"github.com/up42/blockctl/pkg/global"
)

func UserAgent() string {
	return fmt.Sprintf("blockctl/%s", global.Version)
}
