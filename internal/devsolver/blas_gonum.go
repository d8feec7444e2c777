//go:build !netlib || !cgo

package devsolver

const blasName = "gonum"
