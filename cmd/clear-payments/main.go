// clear-payments 是一个运维工具：删除某个月份的全部缴费记录，
// 把所有租客重置为未缴费状态（常用于月初或演示环境）。
package main

import (
	"fmt"
	"os"
	"time"

	"pgstay-http-service/internal/domain/services"
	"pgstay-http-service/internal/infrastructure/config"
	"pgstay-http-service/internal/infrastructure/database"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load() // .env文件可选，环境变量可能已通过其他方式设置

	var month string

	rootCmd := &cobra.Command{
		Use:   "clear-payments",
		Short: "Delete all payment records for a month",
		Long:  "Deletes every payment row for the given month so all tenants read as unpaid. Defaults to the current month.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month == "" {
				month = time.Now().Format("2006-01")
			}

			cfg := config.GetConfig()
			pool, err := database.NewConnectionPool(cfg)
			if err != nil {
				return fmt.Errorf("连接数据库失败: %w", err)
			}
			defer pool.Close()

			paymentService := services.NewPaymentService(pool.GetDB(), cfg)

			fmt.Printf("Deleting all payments for month: %s\n", month)
			deleted, err := paymentService.ClearMonth(month)
			if err != nil {
				return fmt.Errorf("删除缴费记录失败: %w", err)
			}

			fmt.Printf("Deleted %d payment record(s) - all tenants now show as unpaid\n", deleted)
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&month, "month", "m", "", "month to clear in YYYY-MM format (default: current month)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
