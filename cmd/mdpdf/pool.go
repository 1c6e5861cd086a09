package main

import (
	"context"

	mdpdf "github.com/alnah/go-mdpdf"
)

// CLIConverter is the part of mdpdf.Converter the commands use.
type CLIConverter interface {
	Convert(ctx context.Context, input mdpdf.Input) (*mdpdf.Result, error)
	Preview(ctx context.Context, markdown, style string) (string, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*mdpdf.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// converterPool adapts mdpdf.ConverterPool to Pool.
type converterPool struct {
	pool *mdpdf.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

func newConverterPool(size int, opts ...mdpdf.Option) Pool {
	return &converterPool{pool: mdpdf.NewConverterPool(size, opts...)}
}

func (p *converterPool) Acquire() (CLIConverter, error) {
	c, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (p *converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*mdpdf.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *converterPool) Size() int {
	return p.pool.Size()
}

func (p *converterPool) Close() error {
	return p.pool.Close()
}
