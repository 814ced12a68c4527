package config

import (
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Cloudinary is the global media storage client.
var Cloudinary *cloudinary.Cloudinary

// ConnectCloudinary initializes the Cloudinary client from CLOUDINARY_URL.
func ConnectCloudinary() {
	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		log.Fatalf("Failed to connect to Cloudinary: %v", err)
	}
	Cloudinary = cld
}
