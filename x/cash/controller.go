package cash

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/coin"
	"github.com/AlphaR2/soteria/errors"
)

// Controller is the functionality needed by other extensions to settle
// balances. BaseController is the standard implementation.
type Controller interface {
	MoveCoins(store soteria.KVStore, src soteria.Address, dest soteria.Address, amount coin.Coin) error
	Balance(store soteria.KVStore, src soteria.Address) (coin.Coins, error)
}

// BaseController implements Controller against a wallet bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by the given account. It is an error
// to query an account that does not exist.
func (c BaseController) Balance(store soteria.KVStore, src soteria.Address) (coin.Coins, error) {
	wallet, err := c.bucket.Get(store, src)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get wallet")
	}
	if wallet == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "wallet %s", src)
	}
	return wallet.Coins(), nil
}

// MoveCoins moves the given amount from src to dest. Fails without
// modifying state if src does not hold sufficient funds.
func (c BaseController) MoveCoins(store soteria.KVStore, src soteria.Address, dest soteria.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %v", &amount)
	}

	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return errors.Wrap(err, "cannot get source wallet")
	}
	if sender == nil {
		return errors.Wrapf(ErrInsufficientFunds, "empty wallet %s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrapf(ErrInsufficientFunds, "wallet %s holds less than %v", src, &amount)
	}

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get destination wallet")
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(store, sender); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}

// IssueCoins attempts to add the given amount of coins to the
// destination address, creating the wallet if needed. The amount may
// be negative to burn coins.
func (c BaseController) IssueCoins(store soteria.KVStore, dest soteria.Address, amount coin.Coin) error {
	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}
