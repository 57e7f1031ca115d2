package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// registryABIJSON is the fixed surface of the certificate registry contract.
// The contract is the system of record: it owns certificate storage,
// validity flags and the admin roster, and its reverts are the sole source
// of authoritative rejection.
const registryABIJSON = `[
  {"inputs":[],"name":"owner","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"internalType":"address","name":"account","type":"address"}],"name":"isAdmin","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"view","type":"function"},
  {"inputs":[],"name":"getAllAdminInfo","outputs":[{"internalType":"uint256","name":"totalAdmins","type":"uint256"},{"internalType":"bool","name":"isCallerAdmin","type":"bool"},{"internalType":"bool","name":"isCallerOwner","type":"bool"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"internalType":"string","name":"certId","type":"string"}],"name":"getCertificate","outputs":[{"internalType":"string","name":"productName","type":"string"},{"internalType":"string","name":"mfgName","type":"string"},{"internalType":"uint256","name":"mfgDate","type":"uint256"},{"internalType":"bool","name":"isValid","type":"bool"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"internalType":"string","name":"certId","type":"string"},{"internalType":"string","name":"productName","type":"string"},{"internalType":"string","name":"mfgName","type":"string"},{"internalType":"uint256","name":"mfgDate","type":"uint256"}],"name":"issueCertificate","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"string","name":"certId","type":"string"}],"name":"revokeCertificate","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"address","name":"newAdmin","type":"address"}],"name":"addAdmin","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"address","name":"adminToRemove","type":"address"}],"name":"removeAdmin","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

var registryABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(registryABIJSON))
	if err != nil {
		panic("chain: invalid embedded registry ABI: " + err.Error())
	}
	return parsed
}()
