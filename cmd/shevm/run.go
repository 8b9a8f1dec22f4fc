package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/chainkit/shevm/internal/vm"
	"github.com/chainkit/shevm/internal/word"
	"github.com/urfave/cli/v2"
)

var RunCmd = cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Execute a hex-encoded bytecode string",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "code",
			Aliases:  []string{"c"},
			Usage:    "hex-encoded bytecode to execute (0x prefix optional)",
			Required: true,
		},
		&cli.IntFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "trace detail: 0=result only, 1=+gas, 2=+stack/memory, 3=+logs",
			Value:   0,
		},
		&cli.StringFlag{
			Name:  "tx",
			Usage: "path to a JSON file overriding the default transaction/block context",
		},
	},
}

// txOverride is the JSON shape accepted by --tx, mirroring the fields of
// vm.Context and vm.BlockHeader a caller would plausibly want to vary
// between runs without recompiling a driver program.
type txOverride struct {
	Caller    string `json:"caller"`
	Origin    string `json:"origin"`
	Address   string `json:"address"`
	CallValue string `json:"callValue"`
	CallData  string `json:"callData"`
	GasLimit  uint64 `json:"gasLimit"`
	GasPrice  string `json:"gasPrice"`
	IsStatic  bool   `json:"isStatic"`

	Coinbase   string `json:"coinbase"`
	Timestamp  uint64 `json:"timestamp"`
	Number     uint64 `json:"number"`
	Difficulty string `json:"difficulty"`
	GasLimitB  uint64 `json:"blockGasLimit"`
	ChainID    uint64 `json:"chainId"`
	BaseFee    string `json:"baseFee"`
}

func doRun(c *cli.Context) error {
	code, err := decodeHex(c.String("code"))
	if err != nil {
		return fmt.Errorf("invalid --code: %w", err)
	}

	ctx := &vm.Context{
		GasLeft: 10_000_000,
		State:   vm.State{},
	}

	if txPath := c.String("tx"); txPath != "" {
		if err := applyTxOverride(ctx, txPath); err != nil {
			return fmt.Errorf("invalid --tx: %w", err)
		}
	}
	ctx.Bytecode = code

	result := vm.Execute(ctx)

	verbose := c.Int("verbose")
	printResult(result, verbose)

	return nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

func wordFromHex(s string) (vm.Word, error) {
	if s == "" {
		return word.Zero(), nil
	}
	b, err := decodeHex(s)
	if err != nil {
		return word.Zero(), err
	}
	var buf [32]byte
	if len(b) > 32 {
		return word.Zero(), fmt.Errorf("value %q exceeds 32 bytes", s)
	}
	copy(buf[32-len(b):], b)
	return word.FromBytes32(buf), nil
}

func applyTxOverride(ctx *vm.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var ov txOverride
	if err := json.Unmarshal(raw, &ov); err != nil {
		return err
	}

	var parseErr error
	set := func(dst *vm.Word, s string) {
		if parseErr != nil || s == "" {
			return
		}
		*dst, parseErr = wordFromHex(s)
	}

	set(&ctx.Caller, ov.Caller)
	set(&ctx.Origin, ov.Origin)
	set(&ctx.Address, ov.Address)
	set(&ctx.CallValue, ov.CallValue)
	set(&ctx.GasPrice, ov.GasPrice)
	set(&ctx.Block.Coinbase, ov.Coinbase)
	set(&ctx.Block.Difficulty, ov.Difficulty)
	set(&ctx.Block.BaseFee, ov.BaseFee)
	if parseErr != nil {
		return parseErr
	}

	if ov.CallData != "" {
		data, err := decodeHex(ov.CallData)
		if err != nil {
			return err
		}
		ctx.CallData = data
	}
	if ov.GasLimit != 0 {
		ctx.GasLeft = int64(ov.GasLimit)
	}
	ctx.IsStatic = ov.IsStatic
	ctx.Block.Timestamp = word.FromUint64(ov.Timestamp)
	ctx.Block.Number = word.FromUint64(ov.Number)
	ctx.Block.GasLimit = word.FromUint64(ov.GasLimitB)
	ctx.Block.ChainID = word.FromUint64(ov.ChainID)
	return nil
}

func printResult(r vm.Result, verbose int) {
	status := "success"
	if !r.Success {
		status = "failure"
	}
	fmt.Printf("status: %s\n", status)
	fmt.Printf("return data: 0x%x\n", r.ReturnData)

	if verbose >= 1 {
		fmt.Printf("gas left: %d\n", r.GasLeft)
	}
	if verbose >= 2 {
		fmt.Printf("stack (top first):\n")
		for i, v := range r.Stack {
			fmt.Printf("  [%d] %s\n", i, v.Hex())
		}
		fmt.Printf("memory: 0x%x\n", r.Memory)
	}
	if verbose >= 3 {
		fmt.Printf("logs:\n")
		for _, l := range r.Logs {
			fmt.Printf("  address=%s data=0x%x topics=%d\n", l.Address.Hex(), l.Data, len(l.Topics))
		}
	}
}
