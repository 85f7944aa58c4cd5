// ABOUTME: Generates RSA keypairs and sample signed farmer tokens for testing
// ABOUTME: Output matches the claim shape the downstream chat UI consumes

package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/OpenAgriNet/amul-sdk-go/models"
	"github.com/OpenAgriNet/amul-sdk-go/services"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "keygen":
		keygen()
	case "sign":
		if len(os.Args) < 3 {
			usage()
		}
		sign(os.Args[2])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s keygen | sign <private-key-path>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  keygen  writes jwt-private.pem and jwt-public.pem\n")
	fmt.Fprintf(os.Stderr, "  sign    prints a token over a sample collated payload\n")
	os.Exit(1)
}

func keygen() {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		fatal("Failed to generate key: %v", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		fatal("Failed to marshal private key: %v", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	if err := os.WriteFile("jwt-private.pem", privPEM, 0600); err != nil {
		fatal("Failed to write private key: %v", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		fatal("Failed to marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	if err := os.WriteFile("jwt-public.pem", pubPEM, 0644); err != nil {
		fatal("Failed to write public key: %v", err)
	}

	fmt.Println("Wrote jwt-private.pem and jwt-public.pem")
}

func sign(keyPath string) {
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		fatal("Failed to read key: %v", err)
	}

	signer, err := services.NewTokenSigner(string(keyData))
	if err != nil {
		fatal("Failed to load key: %v", err)
	}

	account := "123456789012"
	collated := services.Collate(
		[]models.PashuGPTFarmer{{
			FarmerName:   "Demo Farmer",
			FarmerCode:   "DEMO001",
			MobileNumber: "9876543210",
			Village:      "Anand",
			TagNo:        "111111111111",
		}},
		&models.PashuGPTAnimal{
			TagNumber:  "111111111111",
			AnimalType: "Buffalo",
			Breed:      "Mehsana",
		},
		[]models.FarmerDetail{{
			FarmerCode:    "DEMO001",
			FarmerName:    "Demo Farmer",
			BankAccountNo: account,
			BankName:      "Demo Bank",
		}},
		&models.SocietyData{
			SocietyCode: "S001",
			SocietyName: "Demo DCS",
		},
	)

	token, err := signer.Sign(collated)
	if err != nil {
		fatal("Failed to sign: %v", err)
	}
	fmt.Print(token)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
