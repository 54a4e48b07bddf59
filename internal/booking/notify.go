package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
)

// buildNotification assembles the email job for a committed
// reservation.  Wording depends on the resolved status: a Pending
// reservation gets "received", a Confirmed one "confirmed".  The hotel
// lookup is best-effort; when it fails the job is still produced with
// a generic sign-off so delivery is never blocked on secondary data.
func buildNotification(ctx context.Context, store Store, res *model.Reservation, room model.Room, customer model.Customer) queue.NotificationJob {
	hotelName := "the hotel"
	from := ""
	if hotel, err := store.HotelByID(ctx, room.HotelID); err == nil {
		hotelName = hotel.Name
		from = hotel.Email
	} else {
		log.Printf("booking: hotel lookup for notification failed: %v", err)
	}

	verb := "received"
	if res.Status == model.StatusConfirmed {
		verb = "confirmed"
	}

	body := fmt.Sprintf(
		"Hello %s,\n"+
			"Your reservation has been %s successfully!\n"+
			"Reservation details:\n"+
			"Reservation Code: %s\n"+
			"Customer: %s\n"+
			"Room: %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n"+
			"Booking Status: %s\n"+
			"Best regards,\n"+
			"%s team",
		customer.Name, verb,
		res.Code,
		customer.Name,
		room.Alias(),
		res.CheckIn.Format("02/01/2006"),
		res.CheckOut.Format("02/01/2006"),
		res.Status,
		hotelName,
	)

	return queue.NotificationJob{
		ReservationID:   res.ID,
		ReservationCode: res.Code,
		Subject:         fmt.Sprintf("Your reservation has been %s", verb),
		Body:            body,
		From:            from,
		Recipients:      []string{customer.Email},
		EnqueuedAt:      time.Now().UTC().Format(time.RFC3339),
	}
}
