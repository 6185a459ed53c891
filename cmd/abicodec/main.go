// abicodec 以太坊合约调用 ABI 编解码命令行工具
package main

func main() {
	Execute()
}
