package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/evmabi/internal/core/abi"
	"github.com/weisyn/evmabi/pkg/utils"
)

var unitsDecimals uint8

// unitsCmd 金额与时间戳换算
var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "金额与时间戳换算",
	Long:  "在整数金额（wei）与十进制金额之间换算，以及链上时间戳与 ISO-8601 之间换算",
}

// fromWeiCmd 整数金额转十进制
var fromWeiCmd = &cobra.Command{
	Use:   "from-wei <amount>",
	Short: "整数金额按精度格式化为十进制",
	Long: `示例:
  abicodec units from-wei 1500000000000000000        # 1.5
  abicodec units from-wei 1234567 --decimals 6       # 1.234567`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := abi.ParseInteger(args[0])
		if err != nil {
			return err
		}
		return formatter.Print(utils.FormatUnits(amount, unitsDecimals))
	},
}

// toWeiCmd 十进制转整数金额
var toWeiCmd = &cobra.Command{
	Use:   "to-wei <amount>",
	Short: "十进制金额按精度转为整数",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := utils.ParseUnits(args[0], unitsDecimals)
		if err != nil {
			return err
		}
		return formatter.Print(amount.String())
	},
}

// timeCmd 时间戳换算
var timeCmd = &cobra.Command{
	Use:   "time <timestamp|iso8601>",
	Short: "秒级时间戳与 ISO-8601 互转",
	Long: `输入为整数时按秒级时间戳转为 ISO-8601，否则按 RFC 3339 解析为时间戳。

示例:
  abicodec units time 1700000000                  # 2023-11-14T22:13:20.000Z
  abicodec units time 2023-11-14T22:13:20Z        # 1700000000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ts, err := abi.ParseInteger(args[0]); err == nil {
			iso, err := utils.UnixToISO8601(ts)
			if err != nil {
				return err
			}
			return formatter.Print(iso)
		}
		ts, err := utils.ISO8601ToUnix(args[0])
		if err != nil {
			return fmt.Errorf("无法识别的时间: %w", err)
		}
		return formatter.Print(ts.String())
	},
}

func init() {
	unitsCmd.PersistentFlags().Uint8Var(&unitsDecimals, "decimals", utils.EtherDecimals, "小数位数")
	unitsCmd.AddCommand(fromWeiCmd)
	unitsCmd.AddCommand(toWeiCmd)
	unitsCmd.AddCommand(timeCmd)
}
