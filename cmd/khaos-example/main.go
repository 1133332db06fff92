// Command khaos-example runs the bank example specifications.
package main

import (
	"github.com/devicelab-dev/khaos/example/bank"
	"github.com/devicelab-dev/khaos/pkg/cli"
)

func main() {
	cli.Main(bank.NewBankAccountSpecification(), bank.NewExampleSpecification())
}
