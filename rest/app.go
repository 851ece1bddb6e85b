package rest

import (
	"log"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"

	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/gorilla/mux"

	"github.com/kdimitrova/IOU-Tracker/contract"
	"github.com/kdimitrova/IOU-Tracker/repository"
)

type Config struct {
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
}

type App struct {
	Router        *mux.Router
	Users         contract.UserRepo
	Friendship    contract.FriendshipRepo
	IOUs          contract.IOURepo
	Payments      contract.PaymentRepo
	Recurring     contract.RecurringRepo
	Invites       contract.InviteRepo
	Notifications contract.NotificationRepo
	Blocked       contract.BlockRepo
	Feed          contract.FeedRepo

	Validator  *validator.Validate
	Translator ut.Translator

	jwtSecret []byte
}

func (a *App) Init(cfg Config) {
	db := repository.Open(cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	a.Users = repository.NewUserRepoMysql(db)
	a.Friendship = repository.NewFriendRepoMysql(db)
	a.IOUs = repository.NewIOURepoMysql(db)
	a.Payments = repository.NewPaymentRepoMysql(db)
	a.Recurring = repository.NewRecurringRepoMysql(db)
	a.Invites = repository.NewInviteRepoMysql(db)
	a.Notifications = repository.NewNotificationRepoMysql(db)
	a.Blocked = repository.NewBlockRepoMysql(db)
	a.Feed = repository.NewFeedRepoMysql(db)

	a.jwtSecret = []byte(cfg.JWTSecret)

	a.Validator = validator.New()
	eng := en.New()
	uni := ut.New(eng, eng)

	var found bool
	a.Translator, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(a.Validator, a.Translator); err != nil {
		log.Fatal(err)
	}

	a.Router = mux.NewRouter()
	a.initializeRoutes()
}

func (a *App) Run(addr string) {
	log.Fatal(http.ListenAndServe(addr, a.Router))
}

func (a *App) initializeRoutes() {
	a.Router.HandleFunc("/login", a.login).Methods(http.MethodPost)
	a.Router.HandleFunc("/register", a.register).Methods(http.MethodPost)
	a.Router.HandleFunc("/register/suggestions", a.suggestUsernames).Methods(http.MethodPost)
	a.Router.HandleFunc("/invites/{token}", a.getInviteByToken).Methods(http.MethodGet)

	// Auth routes
	s := a.Router.PathPrefix("/home").Subrouter()
	s.Use(a.jwtVerify)

	s.HandleFunc("/users", a.getUsers).Methods(http.MethodGet)
	s.HandleFunc("/users/{id:[0-9]+}", a.getUser).Methods(http.MethodGet)
	s.HandleFunc("/users/{id:[0-9]+}/street-cred", a.getStreetCred).Methods(http.MethodGet)

	s.HandleFunc("/friends", a.addFriend).Methods(http.MethodPost)
	s.HandleFunc("/friends", a.getFriends).Methods(http.MethodGet)
	s.HandleFunc("/friends/pending", a.getPendingFriends).Methods(http.MethodGet)
	s.HandleFunc("/friends/{id:[0-9]+}/accept", a.acceptFriend).Methods(http.MethodPost)
	s.HandleFunc("/friends/{id:[0-9]+}/decline", a.declineFriend).Methods(http.MethodPost)
	s.HandleFunc("/friends/{id:[0-9]+}", a.unfriend).Methods(http.MethodDelete)

	s.HandleFunc("/ious", a.addIOU).Methods(http.MethodPost)
	s.HandleFunc("/ious", a.getIOUs).Methods(http.MethodGet)
	s.HandleFunc("/ious/{id:[0-9]+}", a.getIOU).Methods(http.MethodGet)
	s.HandleFunc("/ious/{id:[0-9]+}/accept", a.acceptIOU).Methods(http.MethodPost)
	s.HandleFunc("/ious/{id:[0-9]+}/decline", a.declineIOU).Methods(http.MethodPost)
	s.HandleFunc("/ious/{id:[0-9]+}/cancel", a.cancelIOU).Methods(http.MethodPost)

	s.HandleFunc("/ious/{id:[0-9]+}/payments", a.logPayment).Methods(http.MethodPost)
	s.HandleFunc("/ious/{id:[0-9]+}/payments", a.getPayments).Methods(http.MethodGet)
	s.HandleFunc("/payments/{id:[0-9]+}/confirm", a.confirmPayment).Methods(http.MethodPost)
	s.HandleFunc("/payments/{id:[0-9]+}/reject", a.rejectPayment).Methods(http.MethodPost)

	s.HandleFunc("/recurring", a.addRecurring).Methods(http.MethodPost)
	s.HandleFunc("/recurring", a.getRecurring).Methods(http.MethodGet)
	s.HandleFunc("/recurring/generate", a.generateRecurring).Methods(http.MethodPost)
	s.HandleFunc("/recurring/{id:[0-9]+}", a.deactivateRecurring).Methods(http.MethodDelete)

	s.HandleFunc("/invites", a.addInvite).Methods(http.MethodPost)
	s.HandleFunc("/invites", a.getInvites).Methods(http.MethodGet)
	s.HandleFunc("/invites/{id:[0-9]+}", a.revokeInvite).Methods(http.MethodDelete)

	s.HandleFunc("/notifications", a.getNotifications).Methods(http.MethodGet)
	s.HandleFunc("/notifications/count", a.getUnreadCount).Methods(http.MethodGet)
	s.HandleFunc("/notifications/read-all", a.readAllNotifications).Methods(http.MethodPost)
	s.HandleFunc("/notifications/{id:[0-9]+}/read", a.readNotification).Methods(http.MethodPost)

	s.HandleFunc("/blocked", a.blockUser).Methods(http.MethodPost)
	s.HandleFunc("/blocked", a.getBlocked).Methods(http.MethodGet)
	s.HandleFunc("/blocked/{id:[0-9]+}", a.unblockUser).Methods(http.MethodDelete)

	s.HandleFunc("/feed", a.getFeed).Methods(http.MethodGet)
}
