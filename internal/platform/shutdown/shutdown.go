package shutdown

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlpAus/clone-pool-backend/pkg/lifecycle"
)

// Coordinator 负责编排应用程序的优雅停机流程。
type Coordinator struct {
	Manager *lifecycle.Manager
}

// NewCoordinator 创建一个新的停机协调器。
func NewCoordinator(manager *lifecycle.Manager) *Coordinator {
	return &Coordinator{Manager: manager}
}

// ListenForSignalsAndShutdown 启动信号监听并阻塞，直到停机流程完成。
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 阻塞直到接收到停机信号
	<-sigChan
	fmt.Println("\n收到关闭信号，开始优雅停机...")

	// 关闭HTTP服务器，允许正在进行的请求完成
	httpTimeout := 15 * time.Second
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Gin服务器关闭错误: %v\n", err)
	} else {
		fmt.Println("Gin服务器已关闭。")
	}

	// 广播停机信号并等待后台服务退出
	gracefulTimeout := 10 * time.Second
	c.Manager.Shutdown()

	remaining := c.Manager.WaitWithTimeout(gracefulTimeout)
	if len(remaining) == 0 {
		fmt.Println("所有后台服务已优雅关闭。")
	} else {
		fmt.Printf("警告: 以下服务未在 %v 内退出: %v\n", gracefulTimeout, remaining)
	}

	fmt.Println("优雅停机完成。")
}
