package startup

import (
	"fmt"

	"github.com/SlpAus/clone-pool-backend/internal/account"
	"github.com/SlpAus/clone-pool-backend/internal/clonereg"
	"github.com/SlpAus/clone-pool-backend/internal/livesession"
	"github.com/SlpAus/clone-pool-backend/internal/revenue"
)

// InitializeApplication 是应用首次启动时执行的总入口。
// storage 是账号仓库的后端选择；memory后端下账号池不建表，
// 其余实体始终走关系库。
func InitializeApplication(storage string) error {
	fmt.Println("开始应用初始化...")

	if storage != "memory" {
		if err := account.PrimeDB(); err != nil {
			return err
		}
	}
	if err := clonereg.PrimeDB(); err != nil {
		return err
	}
	if err := livesession.PrimeDB(); err != nil {
		return err
	}
	if err := revenue.PrimeDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
