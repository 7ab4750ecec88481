package cash

import (
	"github.com/AlphaR2/soteria"
	"github.com/AlphaR2/soteria/coin"
	"github.com/AlphaR2/soteria/errors"
	"github.com/AlphaR2/soteria/migration"
	"github.com/AlphaR2/soteria/orm"
)

func init() {
	migration.MustRegister(1, &Set{}, migration.NoModification)
}

// BucketName is where we store the balances.
const BucketName = "cash"

// Set is the payload stored per wallet, a set of coins owned by one
// address.
type Set struct {
	Metadata *soteria.Metadata `json:"metadata"`
	Coins    coin.Coins        `json:"coins"`
}

var _ orm.CloneableData = (*Set)(nil)

// GetMetadata implements the Migratable interface.
func (s *Set) GetMetadata() *soteria.Metadata {
	return s.Metadata
}

// Marshal serializes the set for storage.
func (s *Set) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

// Unmarshal deserializes the set from its stored form.
func (s *Set) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

// Validate requires that all coins are valid and in canonical order.
func (s *Set) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", s.Metadata.Validate())
	err = errors.Append(err, errors.Wrap(s.Coins.Validate(), "coins"))
	return err
}

// Copy makes a new set with the same coins.
func (s *Set) Copy() orm.CloneableData {
	return &Set{
		Metadata: s.Metadata.Copy(),
		Coins:    s.Coins.Clone(),
	}
}

// Wallet is a set of coins bound to an address. It is a type-safe
// wrapper around orm.SimpleObj.
type Wallet struct {
	key   []byte
	value *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet creates an empty wallet with this address.
func NewWallet(key soteria.Address) *Wallet {
	return &Wallet{
		key: key,
		value: &Set{
			Metadata: &soteria.Metadata{Schema: 1},
		},
	}
}

// WalletWith creates a wallet with a balance.
func WalletWith(key soteria.Address, coins ...*coin.Coin) (*Wallet, error) {
	w := NewWallet(key)
	if err := w.Concat(coins); err != nil {
		return nil, err
	}
	return w, nil
}

// Value gets the value stored in the object.
func (w Wallet) Value() soteria.Persistent {
	return w.value
}

// Key returns the key to store the object under.
func (w Wallet) Key() []byte {
	return w.key
}

// Validate makes sure the wallet has a key and a valid coin set.
func (w Wallet) Validate() error {
	if len(w.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "wallet key")
	}
	return w.value.Validate()
}

// SetKey updates the wallet address.
func (w *Wallet) SetKey(key []byte) {
	w.key = key
}

// Clone makes a deep copy of this wallet.
func (w *Wallet) Clone() orm.Object {
	res := &Wallet{
		value: w.value.Copy().(*Set),
	}
	if len(w.key) > 0 {
		res.key = append([]byte(nil), w.key...)
	}
	return res
}

// Coins returns the coins stored in the wallet.
func (w Wallet) Coins() coin.Coins {
	return w.value.Coins
}

// Add modifies the wallet to add the given coin.
func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Coins().Add(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Subtract modifies the wallet to remove the given coin.
func (w *Wallet) Subtract(c coin.Coin) error {
	return w.Add(c.Negative())
}

// Concat combines the given coins with the wallet content, normalizing
// the result.
func (w *Wallet) Concat(coins coin.Coins) error {
	joint, err := w.Coins().Combine(coins)
	if err != nil {
		return err
	}
	w.value.Coins = joint
	return nil
}

// Bucket is a type-safe wrapper around the wallet storage.
type Bucket struct {
	migration.Bucket
}

// NewBucket initializes a cash.Bucket with the default name.
func NewBucket() Bucket {
	return Bucket{
		Bucket: migration.NewBucket("cash", BucketName, NewWallet(nil)),
	}
}

// Get returns the wallet for this address, or nil if none exists.
func (b Bucket) Get(db soteria.KVStore, key soteria.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*Wallet), nil
}

// GetOrCreate returns the wallet for this address, creating an empty
// one in memory if none is stored yet.
func (b Bucket) GetOrCreate(db soteria.KVStore, key soteria.Address) (*Wallet, error) {
	wallet, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		wallet = NewWallet(key)
	}
	return wallet, nil
}

// Save persists the wallet.
func (b Bucket) Save(db soteria.KVStore, wallet *Wallet) error {
	return b.Bucket.Save(db, wallet)
}
