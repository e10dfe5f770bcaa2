// Package cli is the interactive terminal frontend. It holds no state of
// its own beyond the authenticated account handle; all rules live in the
// services it calls.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/baharkarakas/termbank/internal/models"
	"github.com/baharkarakas/termbank/internal/services"
	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

const banner = `
 _____ _____ ____  __  __ ____    _    _   _ _  __
|_   _| ____|  _ \|  \/  | __ )  / \  | \ | | |/ /
  | | |  _| | |_) | |\/| |  _ \ / _ \ |  \| | ' /
  | | | |___|  _ <| |  | | |_) / ___ \| |\  | . \
  |_| |_____|_| \_\_|  |_|____/_/   \_\_| \_|_|\_\
`

var (
	headerFmt  = color.New(color.FgHiMagenta, color.Bold)
	successFmt = color.New(color.FgGreen)
	errorFmt   = color.New(color.FgRed)
	infoFmt    = color.New(color.FgCyan)
	promptFmt  = color.New(color.Bold)
)

type Session struct {
	accounts *services.AccountService
	ledger   *services.LedgerService
	log      *slog.Logger
	in       *bufio.Reader
	current  *models.Account
}

func New(accounts *services.AccountService, ledger *services.LedgerService, log *slog.Logger) *Session {
	return &Session{
		accounts: accounts,
		ledger:   ledger,
		log:      log,
		in:       bufio.NewReader(os.Stdin),
	}
}

// Run drives the menu loop until the user exits or stdin closes.
func (s *Session) Run() error {
	infoFmt.Print(banner + "\n")
	fmt.Println("        Your terminal banking companion")
	for {
		var err error
		if s.current == nil {
			err = s.mainMenu()
		} else {
			err = s.accountMenu()
		}
		if errors.Is(err, errExit) {
			successFmt.Println("\nThank you for banking with us. Goodbye!")
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			// Storage-level failure: abort the operation, keep the session.
			errorFmt.Printf("\n✗ %v\n", err)
			s.log.Error("operation failed", "err", err)
		}
	}
}

var errExit = errors.New("exit requested")

func (s *Session) mainMenu() error {
	headerFmt.Println("\n══════════════ MAIN MENU ══════════════")
	fmt.Println("[1] Create account")
	fmt.Println("[2] Login")
	fmt.Println("[3] Exit")

	switch choice, err := s.readLine("Enter your choice: "); {
	case err != nil:
		return err
	case choice == "1":
		return s.register()
	case choice == "2":
		return s.login()
	case choice == "3":
		return errExit
	default:
		errorFmt.Println("Invalid choice, try again.")
		return nil
	}
}

func (s *Session) accountMenu() error {
	headerFmt.Printf("\n══════════ WELCOME, %s ══════════\n", strings.ToUpper(s.current.Username))
	infoFmt.Printf("Current balance: $%s\n\n", s.current.Balance.StringFixed(2))
	fmt.Println("[1] Deposit funds")
	fmt.Println("[2] Withdraw funds")
	fmt.Println("[3] Transaction history")
	fmt.Println("[4] Logout")

	switch choice, err := s.readLine("Enter your choice: "); {
	case err != nil:
		return err
	case choice == "1":
		return s.deposit()
	case choice == "2":
		return s.withdraw()
	case choice == "3":
		return s.history()
	case choice == "4":
		s.log.Info("logout", "account", s.current.Username)
		s.current = nil
		successFmt.Println("Logged out.")
		return nil
	default:
		errorFmt.Println("Invalid choice, try again.")
		return nil
	}
}

func (s *Session) register() error {
	username, err := s.readLine("Choose a username: ")
	if err != nil {
		return err
	}
	password, err := s.readPassword("Create a password: ")
	if err != nil {
		return err
	}
	confirm, err := s.readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		errorFmt.Println("Passwords don't match.")
		return nil
	}

	acct, err := s.accounts.Register(username, password)
	if errors.Is(err, models.ErrDuplicateAccount) {
		errorFmt.Println("That username is already taken.")
		return nil
	}
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		errorFmt.Println("Username must be 3-32 alphanumeric characters and the password at least 6.")
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Info("account registered", "account", acct.Username)
	successFmt.Printf("✓ Account %q created. You can log in now.\n", acct.Username)

	// The classic flow: offer an opening deposit, recorded through the
	// ledger so it shows up in history like any other entry.
	if amount, ok, err := s.readAmount("Opening deposit ($, empty to skip): ", true); err != nil {
		return err
	} else if ok && !amount.IsZero() {
		switch _, err := s.ledger.Deposit(&acct, amount); {
		case errors.Is(err, models.ErrInvalidAmount):
			errorFmt.Println("Amount must be positive.")
		case err != nil:
			return err
		default:
			successFmt.Printf("✓ Deposited $%s.\n", amount.StringFixed(2))
		}
	}
	return nil
}

func (s *Session) login() error {
	username, err := s.readLine("Username: ")
	if err != nil {
		return err
	}
	password, err := s.readPassword("Password: ")
	if err != nil {
		return err
	}
	acct, err := s.accounts.Authenticate(username, password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		errorFmt.Println("✗ Invalid username or password.")
		return nil
	}
	if err != nil {
		return err
	}
	s.current = &acct
	s.log.Info("login", "account", acct.Username)
	successFmt.Println("✓ Login successful!")
	return nil
}

func (s *Session) deposit() error {
	amount, ok, err := s.readAmount("Amount to deposit ($): ", false)
	if err != nil || !ok {
		return err
	}
	tx, err := s.ledger.Deposit(s.current, amount)
	if errors.Is(err, models.ErrInvalidAmount) {
		errorFmt.Println("Amount must be positive.")
		return nil
	}
	if err != nil {
		return err
	}
	successFmt.Printf("✓ Deposit successful! Current balance: $%s\n", tx.Balance.StringFixed(2))
	return nil
}

func (s *Session) withdraw() error {
	amount, ok, err := s.readAmount("Amount to withdraw ($): ", false)
	if err != nil || !ok {
		return err
	}
	tx, err := s.ledger.Withdraw(s.current, amount)
	switch {
	case errors.Is(err, models.ErrInvalidAmount):
		errorFmt.Println("Amount must be positive.")
		return nil
	case errors.Is(err, models.ErrInsufficientFunds):
		errorFmt.Println("✗ Insufficient funds.")
		return nil
	case err != nil:
		return err
	}
	successFmt.Printf("✓ Withdrawal successful! Current balance: $%s\n", tx.Balance.StringFixed(2))
	s.printReceipt(tx)
	return nil
}

func (s *Session) history() error {
	txs, err := s.ledger.History(s.current)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		infoFmt.Println("No transactions yet.")
		return nil
	}
	headerFmt.Printf("%-12s %12s %12s  %s\n", "Type", "Amount", "Balance", "Date")
	fmt.Println(strings.Repeat("─", 64))
	for _, tx := range txs {
		line := fmt.Sprintf("%-12s %12s %12s  %s",
			tx.Kind, "$"+tx.Amount.StringFixed(2), "$"+tx.Balance.StringFixed(2),
			tx.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		if tx.Kind == models.TxnDeposit {
			successFmt.Println(line)
		} else {
			infoFmt.Println(line)
		}
	}
	return nil
}

func (s *Session) printReceipt(tx models.Transaction) {
	fmt.Println(strings.Repeat("─", 35))
	fmt.Println("        WITHDRAWAL RECEIPT")
	fmt.Println(strings.Repeat("─", 35))
	fmt.Printf(" Date:      %s\n", tx.CreatedAt.Local().Format(time.DateTime))
	fmt.Printf(" Account:   %s\n", tx.AccountUsername)
	fmt.Printf(" Amount:    $%s\n", tx.Amount.StringFixed(2))
	fmt.Printf(" Remaining: $%s\n", tx.Balance.StringFixed(2))
	fmt.Println(strings.Repeat("─", 35))
}

func (s *Session) readLine(prompt string) (string, error) {
	promptFmt.Print(prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword hides input when stdin is a real terminal and falls back to
// a plain read otherwise (pipes, tests).
func (s *Session) readPassword(prompt string) (string, error) {
	promptFmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		return string(b), err
	}
	line, err := s.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) readAmount(prompt string, allowEmpty bool) (decimal.Decimal, bool, error) {
	raw, err := s.readLine(prompt)
	if err != nil {
		return decimal.Zero, false, err
	}
	if raw == "" && allowEmpty {
		return decimal.Zero, true, nil
	}
	amount, perr := decimal.NewFromString(strings.TrimPrefix(raw, "$"))
	if perr != nil {
		errorFmt.Println("Please enter a valid amount.")
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}
