package payroll

import "errors"

var (
	ErrPayslipNotFound   = errors.New("payslip not found")
	ErrPayslipExists     = errors.New("payslip already exists for this period")
	ErrPFAccountNotFound = errors.New("provident fund account not found")
	ErrUANExists         = errors.New("UAN already registered")
	ErrNotPayslipOwner   = errors.New("payslip belongs to another employee")
)
