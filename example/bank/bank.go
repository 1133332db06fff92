// Package bank is a small domain used by the example specifications.
package bank

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrAccountExists is returned when a customer opens a second account.
	ErrAccountExists = errors.New("customer already has a bank account")
	// ErrNoAccount is returned for customers without an account.
	ErrNoAccount = errors.New("customer has no bank account")
	// ErrNegativeAmount is returned for withdrawals below zero.
	ErrNegativeAmount = errors.New("cannot withdraw a negative amount")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds in account")
)

// Customer holds a bank account.
type Customer struct {
	Name string
}

// AccountSummary is a snapshot of an account.
type AccountSummary struct {
	Balance float64
}

// Bank keeps one account per customer. It is safe for concurrent use.
type Bank struct {
	mu       sync.Mutex
	accounts map[Customer]AccountSummary
}

// New returns an empty bank.
func New() *Bank {
	return &Bank{accounts: make(map[Customer]AccountSummary)}
}

func (b *Bank) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fmt.Sprintf("Bank(%d accounts)", len(b.accounts))
}

// CreateAccount opens an account for customer.
func (b *Bank) CreateAccount(customer Customer, initialBalance float64) (AccountSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.accounts[customer]; ok {
		return AccountSummary{}, fmt.Errorf("%s: %w", customer.Name, ErrAccountExists)
	}
	account := AccountSummary{Balance: initialBalance}
	b.accounts[customer] = account
	return account, nil
}

// AccountSummary returns the current state of the customer's account.
func (b *Bank) AccountSummary(customer Customer) (AccountSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lookup(customer)
}

// Deposit adds amount to the customer's account.
func (b *Bank) Deposit(customer Customer, amount float64) (AccountSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	account, err := b.lookup(customer)
	if err != nil {
		return AccountSummary{}, err
	}
	account.Balance += amount
	b.accounts[customer] = account
	return account, nil
}

// Withdraw removes amount from the customer's account.
func (b *Bank) Withdraw(customer Customer, amount float64) (AccountSummary, error) {
	if amount < 0 {
		return AccountSummary{}, fmt.Errorf("%v: %w", amount, ErrNegativeAmount)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	account, err := b.lookup(customer)
	if err != nil {
		return AccountSummary{}, err
	}
	if account.Balance < amount {
		return AccountSummary{}, ErrInsufficientFunds
	}
	account.Balance -= amount
	b.accounts[customer] = account
	return account, nil
}

func (b *Bank) lookup(customer Customer) (AccountSummary, error) {
	account, ok := b.accounts[customer]
	if !ok {
		return AccountSummary{}, fmt.Errorf("%s: %w", customer.Name, ErrNoAccount)
	}
	return account, nil
}
